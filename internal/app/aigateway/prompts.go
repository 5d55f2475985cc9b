package aigateway

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dalemusser/readalong/internal/domain/models"
)

const (
	defaultArticleTopic = "교과 적합한 일반 주제"
	defaultImageTopic   = "교과 일반"

	// UntitledPlaceholder replaces the title when the reply has no title marker.
	UntitledPlaceholder = "제목 미생성"

	// evaluationBodyLimit is how many characters of the article body the
	// evaluation prompt includes.
	evaluationBodyLimit = 500

	placeholderBase = "https://placehold.co/800x480?text="
)

var (
	titleMarker = regexp.MustCompile(`\[제목:\](.*)`)
	bodyMarker  = regexp.MustCompile(`(?s)\[본문:\](.*)`)
)

func articlePrompt(kind, difficulty, topic string) string {
	if topic == "" {
		topic = defaultArticleTopic
	}
	return fmt.Sprintf("다음 조건에 맞는 초등 4학년 수준의 %s 글을 작성하세요.\n"+
		"- 주제: %s\n"+
		"- 난이도: %s\n"+
		"- 분량: 5문단\n"+
		"- 먼저 한 줄 제목을 쓰고, 이어서 본문을 작성하세요.\n"+
		"- 제목은 [제목:]으로 시작, 본문은 [본문:]으로 시작해 주세요.",
		kind, topic, difficulty)
}

func imagePrompt(kind, difficulty, topic string) string {
	if topic == "" {
		topic = defaultImageTopic
	}
	return fmt.Sprintf("%s 글 삽화, 주제: %s, 난이도: %s, 귀여운 일러스트, 밝은 색감", kind, topic, difficulty)
}

// parseArticle splits a provider reply into title and body using the
// [제목:] and [본문:] markers. The title is the rest of the marker's line.
// Without a (non-empty) title the placeholder is used; without a
// (non-empty) body the whole reply is the body.
func parseArticle(text string) (title, body string) {
	title = UntitledPlaceholder
	body = text
	if m := titleMarker.FindStringSubmatch(text); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			title = t
		}
	}
	if m := bodyMarker.FindStringSubmatch(text); m != nil {
		if b := strings.TrimSpace(m[1]); b != "" {
			body = b
		}
	}
	return title, body
}

func evaluationPrompt(question, stage, articleTitle, articleBody string) string {
	var titleLine, bodyLine string
	if articleTitle != "" {
		titleLine = "**글 제목:** " + articleTitle
	}
	if articleBody != "" {
		bodyLine = "**글 본문:** " + truncateRunes(articleBody, evaluationBodyLimit) + "..."
	}

	return "초등학교 4학년 학생이 작성한 질문을 평가하고 피드백을 제공해주세요.\n\n" +
		"**학생의 질문:**\n" + question + "\n\n" +
		"**질문 단계:** " + models.StageName(stage) + "\n\n" +
		titleLine + "\n" +
		bodyLine + "\n\n" +
		"다음 형식으로 평가 피드백을 작성해주세요:\n\n" +
		"**1. 질문의 장점**\n" +
		"- (질문의 좋은 점 2-3가지)\n\n" +
		"**2. 개선 제안**\n" +
		"- (더 나은 질문을 만들기 위한 제안 1-2가지)\n\n" +
		"**3. 평가 점수**\n" +
		"- 이해도: ⭐⭐⭐⭐⭐ (5점 만점)\n" +
		"- 창의성: ⭐⭐⭐⭐⭐ (5점 만점)\n" +
		"- 적절성: ⭐⭐⭐⭐⭐ (5점 만점)\n\n" +
		"**4. 격려 메시지**\n" +
		"- (학생을 격려하는 따뜻한 메시지)"
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// PlaceholderURL returns a placeholder graphic with text as its caption.
func PlaceholderURL(text string) string {
	return placeholderBase + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
