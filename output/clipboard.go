package output

import cb "github.com/atotto/clipboard"

type systemClipboard struct{}

func (systemClipboard) Write(text string) error {
	return cb.WriteAll(text)
}
