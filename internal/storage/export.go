package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/probesim/internal/recorder"
)

type ExportData struct {
	RunMetadata
	Records []recorder.Record `json:"data"`
}

func ExportJSON(path string, meta *RunMetadata, records []recorder.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return EncodeJSON(file, meta, records)
}

func ExportJSONStdout(meta *RunMetadata, records []recorder.Record) error {
	return EncodeJSON(os.Stdout, meta, records)
}

func EncodeJSON(w io.Writer, meta *RunMetadata, records []recorder.Record) error {
	data := ExportData{RunMetadata: *meta, Records: records}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
