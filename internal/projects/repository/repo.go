package repository

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/devfolio/portfolio-backend/internal/projects/domain"
)

const projectsCollection = "projects"

// ProjectRepository is the Firestore-backed project store. It exposes the
// ordered live-query and CRUD surface the sync service runs against.
type ProjectRepository struct {
	client *firestore.Client
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(client *firestore.Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// query is the canonical collection ordering: order desc, lastUpdated desc.
func (r *ProjectRepository) query() firestore.Query {
	return r.client.Collection(projectsCollection).
		OrderBy("order", firestore.Desc).
		OrderBy("lastUpdated", firestore.Desc)
}

// Listen opens a live subscription on the ordered collection. Every remote
// change invokes onUpdate with the full recomputed list, in the order the
// store emits snapshots. The returned cancel terminates the subscription;
// calling it after the stream already closed is a no-op.
func (r *ProjectRepository) Listen(ctx context.Context, onUpdate func([]domain.Project)) (func(), error) {
	lctx, cancel := context.WithCancel(ctx)
	snapshots := r.query().Snapshots(lctx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				// A failed stream goes quiet rather than crashing:
				// subscribers keep their last-known state.
				if lctx.Err() == nil {
					log.Printf("[projects] snapshot stream closed: %v", err)
				}
				return
			}
			onUpdate(decodeSnapshot(snap))
		}
	}()

	return cancel, nil
}

// List performs a single-shot ordered read of the collection.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	docs, err := r.query().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]domain.Project, 0, len(docs))
	for _, doc := range docs {
		p, err := decodeDoc(doc)
		if err != nil {
			log.Printf("[projects] skipping malformed doc %s: %v", doc.Ref.ID, err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Create adds a new project document. The id is store-assigned and
// lastUpdated is the server timestamp.
func (r *ProjectRepository) Create(ctx context.Context, draft domain.Draft) (string, error) {
	ref, _, err := r.client.Collection(projectsCollection).Add(ctx, writeData(draft))
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// Update merges the given fields into the document and refreshes the server
// timestamp. Fields not present in the map are untouched.
func (r *ProjectRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	data := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data["lastUpdated"] = firestore.ServerTimestamp

	_, err := r.client.Collection(projectsCollection).Doc(id).Set(ctx, data, firestore.MergeAll)
	return err
}

// Delete removes the document.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(projectsCollection).Doc(id).Delete(ctx)
	return err
}

// Get fetches one project by id, returning domain.ErrProjectNotFound for a
// missing document.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	snap, err := r.client.Collection(projectsCollection).Doc(id).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}

	p, err := decodeDoc(snap)
	if err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return &p, nil
}

func decodeSnapshot(snap *firestore.QuerySnapshot) []domain.Project {
	out := make([]domain.Project, 0, snap.Size)
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("[projects] snapshot iteration: %v", err)
			break
		}
		p, err := decodeDoc(doc)
		if err != nil {
			log.Printf("[projects] skipping malformed doc %s: %v", doc.Ref.ID, err)
			continue
		}
		out = append(out, p)
	}
	return out
}

func decodeDoc(doc *firestore.DocumentSnapshot) (domain.Project, error) {
	var p domain.Project
	if err := doc.DataTo(&p); err != nil {
		return domain.Project{}, err
	}
	p.ID = doc.Ref.ID
	return p, nil
}

// writeData flattens a draft into the document field map. lastUpdated is
// always the server time, never a client clock.
func writeData(d domain.Draft) map[string]any {
	techStack := d.TechStack
	if techStack == nil {
		techStack = []string{}
	}
	return map[string]any{
		"title":               d.Title,
		"description":         d.Description,
		"tagline":             d.Tagline,
		"topic":               d.Topic,
		"markdownDescription": d.MarkdownDescription,
		"imageUrl":            d.ImageURL,
		"gitLink":             d.GitLink,
		"pdfReportLink":       d.PDFReportLink,
		"techStack":           techStack,
		"featured":            d.Featured,
		"order":               d.Order,
		"lastUpdated":         firestore.ServerTimestamp,
	}
}
