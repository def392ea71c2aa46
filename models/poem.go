package models

import "github.com/daybrief/daybrief/enums"

type PoemResponse struct {
	Data PoemData `json:"data"`
}

type PoemData struct {
	Origin PoemOrigin `json:"origin"`
}

type PoemOrigin struct {
	Title   string   `json:"title"`
	Dynasty string   `json:"dynasty"`
	Author  string   `json:"author"`
	Content []string `json:"content"`
}

// PoemRecord carries a classical poem, already rendered.
type PoemRecord struct {
	Text string
}

func (PoemRecord) Source() enums.Source { return enums.SourcePoem }

func (r PoemRecord) Block() string {
	return "📝 Poem of the Day\n" + r.Text
}
