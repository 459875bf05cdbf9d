package input

import "net/url"

// Plan is what the user asked for: one step per URL.
type Plan struct {
	Region string
	Steps  []Step
}

type Step struct {
	Method Method
	URL    *url.URL
	Header Header
	Body   Body
}

type Method string

type Header struct {
	Fields []Field
}

type BodyType int

const (
	EmptyBody BodyType = iota
	RawBody
)

type Body struct {
	BodyType BodyType
	Field    Field // used only when BodyType == RawBody
}

type Field struct {
	Name   string
	Value  string
	IsFile bool
}

type Options struct {
	Method    string
	Headers   []string
	Data      string
	UserAgent string
	Region    string
	ReadStdin bool
}
