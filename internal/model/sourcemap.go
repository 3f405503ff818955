package model

import (
	"encoding/base64"

	"github.com/goccy/go-json"
)

// SourceMap is a revision 3 source map.
type SourceMap struct {
	Version        int      `json:"version" msgpack:"version"`
	File           string   `json:"file,omitempty" msgpack:"file"`
	Sources        []string `json:"sources" msgpack:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty" msgpack:"sourcesContent"`
	Names          []string `json:"names" msgpack:"names"`
	Mappings       string   `json:"mappings" msgpack:"mappings"`
}

// String renders the map as JSON.
func (sm *SourceMap) String() string {
	b, err := json.Marshal(sm)
	if err != nil {
		return ""
	}

	return string(b)
}

// URL renders the map as a base64 data URL suitable for inline sourceMappingURL comments.
func (sm *SourceMap) URL() string {
	return "data:application/json;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(sm.String()))
}
