// Package esindex mirrors audit entries into a search index so the
// dashboard team can query login history. logins.json stays authoritative.
package esindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
)

const indexTimeout = 3 * time.Second

type LoginLogIndexer struct {
	ES    *elasticsearch.Client
	Index string
}

func NewLoginLogIndexer(es *elasticsearch.Client, index string) *LoginLogIndexer {
	return &LoginLogIndexer{ES: es, Index: index}
}

// IndexLoginLog upserts entry under its own id, so replays are idempotent.
func (i *LoginLogIndexer) IndexLoginLog(ctx context.Context, entry entity.LoginLog) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.Index, DocumentID: entry.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return fmt.Errorf("index login log: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index login log: %s", res.Status())
	}
	return nil
}
