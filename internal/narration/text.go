// Package narration turns listening questions into speech.
package narration

import (
	"strings"

	"github.com/abhisek/toeicz/internal/questionbank"
)

var (
	photoMarkers = strings.NewReplacer("[照片：", "", "[photo:", "", "[Photo:", "", "]", "")
	speakerTags  = strings.NewReplacer("W:", "", "M:", "", "\r\n", " ", "\n", " ")
)

// Text builds the script read aloud for q. Reading parts have no script
// and return "".
func Text(part questionbank.Part, q questionbank.Question) string {
	if !part.IsAudio() {
		return ""
	}

	var context string
	if part == questionbank.PartPhotographs {
		context = photoMarkers.Replace(q.Context)
	} else {
		context = speakerTags.Replace(q.Context)
	}
	context = strings.Join(strings.Fields(context), " ")

	var b strings.Builder
	if context != "" {
		b.WriteString(context)
		b.WriteString(". ")
	}
	b.WriteString("Question: ")
	b.WriteString(q.Question)
	b.WriteString(". ")

	for i, opt := range q.Options {
		if i >= len(questionbank.OptionLetters) {
			break
		}
		b.WriteString(questionbank.Letter(i))
		b.WriteString(". ")
		b.WriteString(opt)
		b.WriteString(". ")
	}
	return strings.TrimSpace(b.String())
}
