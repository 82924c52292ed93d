package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	docsAPIURL  = "https://docs.googleapis.com/v1"
	driveAPIURL = "https://www.googleapis.com/drive/v3"
)

// DocsExporter writes generated scripts into Google Docs. The access token
// arrives as an opaque string; token acquisition happens elsewhere.
type DocsExporter struct {
	DocsURL  string
	DriveURL string
	HTTP     *http.Client
	Log      zerolog.Logger
}

func NewDocsExporter(log zerolog.Logger) *DocsExporter {
	return &DocsExporter{
		DocsURL:  docsAPIURL,
		DriveURL: driveAPIURL,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Log:      log,
	}
}

func (e *DocsExporter) doJSON(ctx context.Context, method, rawURL, accessToken string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	return e.HTTP.Do(req)
}

// CreateDocument creates an empty document and returns its id.
func (e *DocsExporter) CreateDocument(ctx context.Context, title, accessToken string) (string, error) {
	resp, err := e.doJSON(ctx, http.MethodPost, e.DocsURL+"/documents", accessToken,
		map[string]string{"title": title})
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("docs api error: status %d", resp.StatusCode)
	}
	var doc struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode document: %w", err)
	}
	return doc.DocumentID, nil
}

// InsertText inserts text at the start of the document body.
func (e *DocsExporter) InsertText(ctx context.Context, documentID, text, accessToken string) error {
	body := map[string]any{
		"requests": []any{
			map[string]any{
				"insertText": map[string]any{
					"location": map[string]int{"index": 1},
					"text":     text,
				},
			},
		},
	}
	resp, err := e.doJSON(ctx, http.MethodPost,
		e.DocsURL+"/documents/"+url.PathEscape(documentID)+":batchUpdate", accessToken, body)
	if err != nil {
		return fmt.Errorf("insert text: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("docs api error: status %d", resp.StatusCode)
	}
	return nil
}

// MoveToFolder relocates the document in Drive.
func (e *DocsExporter) MoveToFolder(ctx context.Context, fileID, folderID, accessToken string) error {
	resp, err := e.doJSON(ctx, http.MethodPatch,
		e.DriveURL+"/files/"+url.PathEscape(fileID)+"?addParents="+url.QueryEscape(folderID), accessToken, nil)
	if err != nil {
		return fmt.Errorf("move file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("drive api error: status %d", resp.StatusCode)
	}
	return nil
}

// ExportScript creates a titled document with the script content and moves
// it into the configured folder. A failed move is tolerated: the document
// stays created, just not relocated.
func (e *DocsExporter) ExportScript(ctx context.Context, title, content, folderID, accessToken string) (string, error) {
	docID, err := e.CreateDocument(ctx, title, accessToken)
	if err != nil {
		return "", err
	}
	if err := e.InsertText(ctx, docID, content, accessToken); err != nil {
		return "", err
	}
	if folderID != "" {
		if err := e.MoveToFolder(ctx, docID, folderID, accessToken); err != nil {
			e.Log.Warn().Err(err).Str("doc_id", docID).Msg("could not move exported document")
		}
	}
	return docID, nil
}
