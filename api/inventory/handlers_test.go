package inventory

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"Moulinette/api/constants"
	"Moulinette/api/inventory/engine"
)

func multipartRequest(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile(constants.KeyFile, fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write(content)
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/inventory/upload-mask", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestReadUploadExtensionWhitelist(t *testing.T) {
	req := multipartRequest(t, "extract.xlsx", []byte("data"))
	if _, _, _, err := readUpload(req, maskExtensions); err == nil {
		t.Error("expected a rejection for a non-csv mask upload")
	}

	req = multipartRequest(t, "extract.csv", []byte("data"))
	content, name, ext, err := readUpload(req, maskExtensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "data" || name != "extract.csv" || ext != ".csv" {
		t.Errorf("got %q/%q/%q", content, name, ext)
	}
}

func TestReadUploadRejectsEmptyFile(t *testing.T) {
	req := multipartRequest(t, "extract.csv", nil)
	if _, _, _, err := readUpload(req, maskExtensions); err == nil {
		t.Error("expected a rejection for an empty upload")
	}
}

func TestReadUploadRequiresFile(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	w.WriteField(constants.KeySessionName, "inv janvier")
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/inventory/upload-mask", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, _, _, err := readUpload(req, maskExtensions)
	if err == nil || !strings.Contains(err.Error(), constants.ErrFileRequired) {
		t.Errorf("err = %v, want file-required", err)
	}
}

func TestParseSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/inventory/session/42/status", nil)
	req = mux.SetURLVars(req, map[string]string{"session_id": "42"})
	id, err := parseSessionID(req)
	if err != nil || id != 42 {
		t.Errorf("got %d, %v", id, err)
	}

	for _, bad := range []string{"", "abc", "-1", "0"} {
		req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/x", nil),
			map[string]string{"session_id": bad})
		if _, err := parseSessionID(req); err == nil {
			t.Errorf("session id %q: expected an error", bad)
		}
	}
}

func TestComputedStatus(t *testing.T) {
	tests := []struct {
		types  map[string]bool
		status string
		step   engine.Step
	}{
		{map[string]bool{}, constants.StatusCreated, engine.StepContext},
		{map[string]bool{constants.FileTypeMask: true}, constants.StatusMaskImported, engine.StepImported},
		{map[string]bool{constants.FileTypeMask: true, constants.FileTypeTemplate: true}, constants.StatusTemplateReady, engine.StepTemplate},
		{map[string]bool{constants.FileTypeMask: true, constants.FileTypeTemplate: true, constants.FileTypeFinal: true}, constants.StatusFinalReady, engine.StepResult},
	}
	for _, tc := range tests {
		status, step := computedStatus(tc.types)
		if status != tc.status || step != tc.step {
			t.Errorf("computedStatus(%v) = %s/%d, want %s/%d", tc.types, status, step, tc.status, tc.step)
		}
	}
}

func TestFileTypeListOrder(t *testing.T) {
	types := map[string]bool{
		constants.FileTypeFinal: true,
		constants.FileTypeMask:  true,
	}
	got := fileTypeList(types)
	want := []string{constants.FileTypeMask, constants.FileTypeFinal}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
