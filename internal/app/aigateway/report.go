package aigateway

import (
	"fmt"
	"time"

	"github.com/dalemusser/readalong/internal/domain/models"
)

// FeedbackDocument renders evaluation feedback as the plain-text report
// students download, and returns a suggested file name for it.
func FeedbackDocument(nickname, question, stage, feedback string, now time.Time) (name, content string) {
	content = "질문 평가 피드백\n\n" +
		"학생: " + nickname + "\n" +
		"단계: " + models.StageName(stage) + "\n" +
		"질문: " + question + "\n\n" +
		feedback + "\n\n" +
		"---\n" +
		"생성일시: " + koreanTimestamp(now) + "\n"
	name = fmt.Sprintf("질문평가_%s_%d.txt", nickname, now.UnixMilli())
	return name, content
}

// koreanTimestamp formats t the way Korean locales print a date-time,
// e.g. "2025. 3. 7. 오후 2:05:09".
func koreanTimestamp(t time.Time) string {
	meridiem := "오전"
	h := t.Hour()
	if h >= 12 {
		meridiem = "오후"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), meridiem, h, t.Minute(), t.Second())
}
