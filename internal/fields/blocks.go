package fields

import (
	"encoding/json"

	"github.com/roach88/tfscope/internal/record"
)

// blockFields is the fixed list of payload fields that may carry nested
// structured documents. Output block order follows this list, not the
// input map's iteration order.
var blockFields = []string{
	"tf_http_req_body",
	"tf_http_res_body",
	"body",
	"request",
	"response",
}

// Blocks extracts embedded sub-documents from known payload fields.
// String values are parsed as JSON; parse failures keep the raw text
// with Raw=true. Non-string structured values are carried as-is.
func Blocks(data map[string]any) []record.EmbeddedBlock {
	var blocks []record.EmbeddedBlock
	for _, field := range blockFields {
		v, ok := data[field]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if val == "" {
				continue
			}
			var parsed any
			if err := json.Unmarshal([]byte(val), &parsed); err != nil {
				blocks = append(blocks, record.EmbeddedBlock{Type: field, Data: val, Raw: true})
				continue
			}
			blocks = append(blocks, record.EmbeddedBlock{Type: field, Data: parsed})
		default:
			blocks = append(blocks, record.EmbeddedBlock{Type: field, Data: val})
		}
	}
	return blocks
}
