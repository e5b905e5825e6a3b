package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/arkline/payhook/pkg/httpclient"
)

// Client is the subset of the Firestore v1 document API the gateway uses:
// point reads, creates and patches, each optionally restricted by a field
// mask.
type Client interface {
	DocumentName(segments ...string) string
	GetDocument(ctx context.Context, name string, mask []string) (*Document, error)
	CreateDocument(ctx context.Context, parent, collectionID, documentID string, doc *Document) (*Document, error)
	UpdateDocument(ctx context.Context, doc *Document, updateMask []string) (*Document, error)
}

type client struct {
	http httpclient.HTTPClient
	cfg  Config
}

func NewClient(cfg Config, http httpclient.HTTPClient) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &client{http: http, cfg: cfg}
}

// DocumentName builds a fully qualified resource name under the project's
// default database, e.g. DocumentName("users", "42", "transact", "7").
func (c *client) DocumentName(segments ...string) string {
	return fmt.Sprintf("projects/%s/databases/(default)/documents/%s",
		c.cfg.ProjectID, strings.Join(segments, "/"))
}

func (c *client) GetDocument(ctx context.Context, name string, mask []string) (*Document, error) {
	query := url.Values{}
	for _, field := range mask {
		query.Add("mask.fieldPaths", field)
	}

	resp, err := c.http.Get(ctx, c.requestURL(name, query), c.headers())
	if err != nil {
		return nil, fmt.Errorf("firestore get %q: %w", name, err)
	}

	return decodeDocument(resp)
}

func (c *client) CreateDocument(ctx context.Context, parent, collectionID, documentID string, doc *Document) (*Document, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	query := url.Values{}
	query.Set("documentId", documentID)

	resp, err := c.http.Post(ctx, c.requestURL(parent+"/"+collectionID, query), &buf, c.headers())
	if err != nil {
		return nil, fmt.Errorf("firestore create %s/%s/%s: %w", parent, collectionID, documentID, err)
	}

	return decodeDocument(resp)
}

func (c *client) UpdateDocument(ctx context.Context, doc *Document, updateMask []string) (*Document, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	query := url.Values{}
	for _, field := range updateMask {
		query.Add("updateMask.fieldPaths", field)
		query.Add("mask.fieldPaths", field)
	}

	resp, err := c.http.Patch(ctx, c.requestURL(doc.Name, query), &buf, c.headers())
	if err != nil {
		return nil, fmt.Errorf("firestore update %q: %w", doc.Name, err)
	}

	return decodeDocument(resp)
}

func (c *client) requestURL(name string, query url.Values) string {
	u := c.cfg.BaseURL + "/" + name
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *client) headers() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if c.cfg.AccessToken != "" {
		headers["Authorization"] = "Bearer " + c.cfg.AccessToken
	}
	return headers
}

func decodeDocument(resp *http.Response) (*Document, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, MapStatusToError(resp.StatusCode)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding error: %w", err)
	}

	return &doc, nil
}
