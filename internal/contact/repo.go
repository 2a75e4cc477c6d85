package contact

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const submissionsCollection = "contactSubmissions"

// Repo is the Firestore-backed submission inbox, ordered newest first.
type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) query() firestore.Query {
	return r.client.Collection(submissionsCollection).
		OrderBy("timestamp", firestore.Desc)
}

// Create appends a submission with a server-assigned timestamp and returns
// the store-assigned id.
func (r *Repo) Create(ctx context.Context, draft Draft) (string, error) {
	ref, _, err := r.client.Collection(submissionsCollection).Add(ctx, map[string]any{
		"name":      draft.Name,
		"email":     draft.Email,
		"message":   draft.Message,
		"timestamp": firestore.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("create submission: %w", err)
	}
	return ref.ID, nil
}

// List reads the whole inbox, newest first.
func (r *Repo) List(ctx context.Context) ([]Submission, error) {
	docs, err := r.query().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	out := make([]Submission, 0, len(docs))
	for _, doc := range docs {
		s, err := decodeDoc(doc)
		if err != nil {
			log.Printf("[contact] skipping malformed doc %s: %v", doc.Ref.ID, err)
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Listen opens a live subscription on the inbox. The returned cancel is a
// safe no-op once the stream has closed.
func (r *Repo) Listen(ctx context.Context, onUpdate func([]Submission)) (func(), error) {
	lctx, cancel := context.WithCancel(ctx)
	snapshots := r.query().Snapshots(lctx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if lctx.Err() == nil {
					log.Printf("[contact] snapshot stream closed: %v", err)
				}
				return
			}

			out := make([]Submission, 0, snap.Size)
			for {
				doc, err := snap.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("[contact] snapshot iteration: %v", err)
					break
				}
				s, err := decodeDoc(doc)
				if err != nil {
					log.Printf("[contact] skipping malformed doc %s: %v", doc.Ref.ID, err)
					continue
				}
				out = append(out, s)
			}
			onUpdate(out)
		}
	}()

	return cancel, nil
}

func decodeDoc(doc *firestore.DocumentSnapshot) (Submission, error) {
	var s Submission
	if err := doc.DataTo(&s); err != nil {
		return Submission{}, err
	}
	s.ID = doc.Ref.ID
	return s, nil
}
