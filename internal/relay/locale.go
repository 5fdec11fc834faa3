package relay

// LocaleDetector reports a language tag for a piece of user text. It only
// influences which message templates the formatter picks; routing never
// branches on it.
type LocaleDetector interface {
	Detect(text string) string
}

// StaticDetector always reports a fixed tag.
type StaticDetector struct {
	Tag string
}

func (d StaticDetector) Detect(string) string { return d.Tag }
