package arrayio

import "io"

// WriteText undoes the shift applied when the text was encoded and writes the
// result to <path>.<ext>. Every nonzero byte is decremented in place, so text
// must not be used afterwards. Separators and the terminator both come out as
// 0.
func WriteText(text []byte, path, ext string) error {
	for i, b := range text {
		if b != 0 {
			text[i] = b - 1
		}
	}
	return writeFile("write text", Path(path, ext), func(w io.Writer) error {
		_, err := w.Write(text)
		return err
	})
}
