package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = model.ErrNotFound

const counterCollection = "counters"

// document is implemented by every stored document type
type document interface {
	docID() int64
}

// collection stores documents of type D keyed by an auto-increment int64
type collection[D document] struct {
	client *firestore.Client
	prefix string
	name   string // collection name without prefix
	label  string // used in error messages
}

func newCollection[D document](client *firestore.Client, prefix, name, label string) *collection[D] {
	return &collection[D]{client: client, prefix: prefix, name: name, label: label}
}

func withPrefix(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

func (c *collection[D]) ref() *firestore.CollectionRef {
	return c.client.Collection(withPrefix(c.prefix, c.name))
}

func (c *collection[D]) doc(id int64) *firestore.DocumentRef {
	return c.ref().Doc(fmt.Sprintf("%d", id))
}

// nextID increments the counter document of the collection in a transaction
func (c *collection[D]) nextID(ctx context.Context) (int64, error) {
	counterRef := c.client.Collection(withPrefix(c.prefix, counterCollection)).Doc(c.name + "_counter")

	var nextID int64
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		current, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not an integer", goerr.V("value", currentValue))
		}
		nextID = current + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID", goerr.V("collection", c.name))
	}

	return nextID, nil
}

func (c *collection[D]) set(ctx context.Context, d *D) error {
	if _, err := c.doc((*d).docID()).Set(ctx, d); err != nil {
		return goerr.Wrap(err, "failed to save "+c.label, goerr.V(model.IDKey, (*d).docID()))
	}
	return nil
}

func (c *collection[D]) get(ctx context.Context, id int64) (*D, error) {
	snap, err := c.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, c.label+" not found", goerr.V(model.IDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get "+c.label, goerr.V(model.IDKey, id))
	}

	var d D
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal "+c.label, goerr.V(model.IDKey, id))
	}
	return &d, nil
}

// query runs q and returns the documents ordered by ID
func (c *collection[D]) query(ctx context.Context, q firestore.Query) ([]*D, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []*D
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate "+c.label)
		}

		var d D
		if err := snap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal "+c.label, goerr.V("doc", snap.Ref.ID))
		}
		docs = append(docs, &d)
	}

	sort.Slice(docs, func(i, j int) bool {
		return (*docs[i]).docID() < (*docs[j]).docID()
	})
	return docs, nil
}

// exists fails with ErrNotFound when the document is missing
func (c *collection[D]) exists(ctx context.Context, id int64) error {
	_, err := c.get(ctx, id)
	return err
}

func (c *collection[D]) delete(ctx context.Context, id int64) error {
	if err := c.exists(ctx, id); err != nil {
		return err
	}
	if _, err := c.doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete "+c.label, goerr.V(model.IDKey, id))
	}
	return nil
}

// filterFields names the document fields each list filter applies to. An
// empty name means the filter is not supported by the collection.
type filterFields struct {
	area   string
	status string
	typ    string
	parent string
	user   string
	date   string
}

func applyFilters(q firestore.Query, cfg *interfaces.ListConfig, f filterFields) firestore.Query {
	if f.area != "" && cfg.Area() != "" {
		q = q.Where(f.area, "==", cfg.Area())
	}
	if f.status != "" && cfg.Status() != "" {
		q = q.Where(f.status, "==", cfg.Status())
	}
	if f.typ != "" && cfg.Type() != "" {
		q = q.Where(f.typ, "==", cfg.Type())
	}
	if f.parent != "" && cfg.ParentID() != 0 {
		q = q.Where(f.parent, "==", cfg.ParentID())
	}
	if f.user != "" && cfg.UserID() != "" {
		q = q.Where(f.user, "==", cfg.UserID())
	}
	if f.date != "" {
		if since := cfg.Since(); since != nil {
			q = q.Where(f.date, ">=", *since)
		}
		if until := cfg.Until(); until != nil {
			q = q.Where(f.date, "<", *until)
		}
	}
	return q
}

// docPointer gives the store write access to identity and timestamps
type docPointer[D any] interface {
	*D
	stamp(id int64, createdAt, updatedAt time.Time)
	created() time.Time
}

// entityStore converts between models and documents around a collection
type entityStore[D document, P docPointer[D], M any] struct {
	*collection[D]
	toDoc   func(*M) *D
	toModel func(*D) *M
	filters filterFields
}

func (s *entityStore[D, P, M]) create(ctx context.Context, m *M) (*M, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := s.toDoc(m)
	P(doc).stamp(id, now, now)
	if err := s.set(ctx, doc); err != nil {
		return nil, err
	}
	return s.toModel(doc), nil
}

func (s *entityStore[D, P, M]) find(ctx context.Context, id int64) (*M, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toModel(doc), nil
}

func (s *entityStore[D, P, M]) list(ctx context.Context, opts ...interfaces.ListOption) ([]*M, error) {
	q := applyFilters(s.ref().Query, interfaces.BuildListConfig(opts...), s.filters)
	docs, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}

	out := make([]*M, len(docs))
	for i, d := range docs {
		out[i] = s.toModel(d)
	}
	return out, nil
}

func (s *entityStore[D, P, M]) update(ctx context.Context, id int64, m *M) (*M, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := s.toDoc(m)
	P(doc).stamp(id, P(existing).created(), time.Now().UTC())
	if err := s.set(ctx, doc); err != nil {
		return nil, err
	}
	return s.toModel(doc), nil
}
