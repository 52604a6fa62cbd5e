package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/robert-malhotra/go-helen-express/pkg/criteria"
)

// ErrEmptyEntity is returned by List when no entity name is given.
var ErrEmptyEntity = errors.New("helen: entity name cannot be empty")

type listPage[T any] struct {
	TotalCount int  `json:"totalCount"`
	Items      []*T `json:"items"`
}

func listDocument(entity string, fields []string) string {
	return fmt.Sprintf(`query List($filter: String, $page: Int!, $pageSize: Int!, $orderBy: String) {
  %s(filter: $filter, page: $page, pageSize: $pageSize, orderBy: $orderBy) {
    totalCount
    items { %s }
  }
}`, entity, strings.Join(fields, " "))
}

// List pages through every record of entity that matches q, starting at q's page.
// fields selects the record fields; when empty, the default selection of a known entity
// is used, or just "id". Paging stops at a short page or once totalCount is reached.
func (c *Client) List(ctx context.Context, entity string, q criteria.Query, fields ...string) iter.Seq2[json.RawMessage, error] {
	if len(fields) == 0 {
		fields = defaultFields(entity)
	}
	pages := iteratePages[json.RawMessage](ctx, c, entity, fields, q)
	return func(yield func(json.RawMessage, error) bool) {
		for raw, err := range pages {
			var v json.RawMessage
			if raw != nil {
				v = *raw
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

// -----------------------------------------------------------------------------
// iteratePages: generic page driver for list queries
// -----------------------------------------------------------------------------

func iteratePages[T any](
	ctx context.Context,
	cli *Client,
	entity string,
	fields []string,
	q criteria.Query,
) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		if entity == "" {
			yield(nil, ErrEmptyEntity)
			return
		}

		if q.Paging.PageSize <= 0 {
			q.Paging.PageSize = cli.pageSize
		}
		q.Paging = q.Paging.Normalize()
		size := q.Paging.PageSize
		doc := listDocument(entity, fields)

		for page := q.Paging.Page; ; page++ {
			var data map[string]*listPage[T]
			if err := cli.Do(ctx, doc, q.WithPage(page).Variables(), &data); err != nil {
				yield(nil, err)
				return
			}
			p := data[entity]
			if p == nil {
				yield(nil, fmt.Errorf("helen: response has no %q field", entity))
				return
			}

			for _, v := range p.Items {
				if !yield(v, nil) {
					return // consumer stopped
				}
			}

			if len(p.Items) < size || (p.TotalCount > 0 && page*size >= p.TotalCount) {
				return // done
			}
		}
	}
}
