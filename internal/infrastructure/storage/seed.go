package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

// Seed loads a db.json export into store. Each top-level key is a
// collection holding either an array of records (record server export) or
// an object keyed by record id (path-keyed store export). Source ids are
// dropped; the store assigns new ones. It returns the records written per
// collection.
func Seed(ctx context.Context, store remote.Store, r io.Reader, logger logrus.FieldLogger) (map[string]int, error) {
	var dump map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	names := make([]string, 0, len(dump))
	for name := range dump {
		names = append(names, name)
	}
	slices.Sort(names)

	written := make(map[string]int, len(names))
	for _, name := range names {
		docs, err := seedDocuments(dump[name])
		if err != nil {
			return written, fmt.Errorf("collection %s: %w", name, err)
		}

		coll := remote.NewCollection(store, name)
		for _, doc := range docs {
			delete(doc, "id")
			if _, err := coll.Create(ctx, doc); err != nil {
				return written, err
			}
			written[name]++
		}
		logger.WithFields(logrus.Fields{
			"collection": name,
			"records":    written[name],
		}).Info("Collection seeded")
	}
	return written, nil
}

func seedDocuments(raw json.RawMessage) ([]map[string]any, error) {
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return compact(list), nil
	}

	var keyed map[string]map[string]any
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("expected an array or an object of records")
	}
	ids := make([]string, 0, len(keyed))
	for id := range keyed {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	docs := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, keyed[id])
	}
	return compact(docs), nil
}

// compact drops null entries
func compact(docs []map[string]any) []map[string]any {
	return slices.DeleteFunc(docs, func(d map[string]any) bool { return d == nil })
}
