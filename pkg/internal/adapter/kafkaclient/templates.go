package kafkaclient

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"
)

// renderFieldFromJSON resolves a "{field}" placeholder against a JSON object.
func renderFieldFromJSON(doc []byte, placeholder string) (string, bool) {
	ph := strings.TrimSpace(placeholder)
	if !strings.HasPrefix(ph, "{") || !strings.HasSuffix(ph, "}") {
		return "", false
	}
	field := strings.TrimSpace(ph[1 : len(ph)-1])
	if field == "" {
		return "", false
	}

	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return "", false
	}
	if raw, ok := m[field]; ok && raw != nil {
		return fmt.Sprint(raw), true
	}
	return "", false
}

func renderKeyFromTemplate(tmpl string, doc []byte) []byte {
	t := strings.TrimSpace(tmpl)
	if t == "" {
		return nil
	}
	if val, ok := renderFieldFromJSON(doc, t); ok {
		return []byte(val)
	}
	return []byte(t)
}

func renderHeadersFromTemplates(tmpls map[string]string, doc []byte) []kafka.Header {
	if len(tmpls) == 0 {
		return nil
	}
	out := make([]kafka.Header, 0, len(tmpls))
	for k, t := range tmpls {
		val := t
		if vv, ok := renderFieldFromJSON(doc, t); ok {
			val = vv
		}
		out = append(out, kafka.Header{Key: k, Value: []byte(val)})
	}
	return out
}
