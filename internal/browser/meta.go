package browser

import (
	"github.com/mitchellh/mapstructure"

	"github.com/novabrowser/nova/pkg/document"
)

// PageMeta is the typed view of the loose metadata map a document
// carries. Unknown keys are ignored, wrongly typed values are skipped.
type PageMeta struct {
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	Author      string `json:"author" mapstructure:"author"`
}

func pageMeta(doc *document.Document) PageMeta {
	var meta PageMeta
	if doc == nil || len(doc.Metadata) == 0 {
		return meta
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &meta,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return meta
	}
	// Best effort: a partially decoded struct is still useful.
	_ = decoder.Decode(doc.Metadata)
	return meta
}
