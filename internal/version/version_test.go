package version

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestPrintVersion_JSON(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)

	var got struct {
		Release   string
		BuildDate string
		GitHash   string
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal: %v, out=%s", err, buf.String())
	}

	if got.Release != Release || got.BuildDate != BuildDate || got.GitHash != GitHash {
		t.Fatalf("unexpected version info: %+v", got)
	}
}
