// Package fake is an in-memory provider used by tests and dry runs. It
// provisions nothing; it records every call in order, supports scripted
// failures, and mimics the contract's idempotent-delete semantics.
package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/azsmoke-io/azsmoke/internal/plan"
	"github.com/azsmoke-io/azsmoke/internal/provider"
)

type Provider struct {
	mu sync.Mutex

	existing map[string]provider.Resource // keyed by id

	created []string // resource names in create order
	deleted []string // resource ids in delete order
	calls   int      // total provider calls issued

	// CreateErr scripts a failure for CreateOrUpdate by resource name.
	CreateErr map[string]error
	// DeleteErr scripts a failure for Delete by resource id.
	DeleteErr map[string]error
	// Phantom marks resource names whose create errors out but whose
	// resource nevertheless materializes remotely, the way a cancelled
	// in-flight operation can.
	Phantom map[string]bool
}

var _ provider.Interface = (*Provider)(nil)

func New() *Provider {
	return &Provider{
		existing: make(map[string]provider.Resource),
	}
}

func (p *Provider) CreateOrUpdate(ctx context.Context, res provider.Resource) (*provider.Created, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := fakeID(res.Kind, res.Name)
	if err, ok := p.CreateErr[res.Name]; ok {
		if p.Phantom[res.Name] {
			p.existing[id] = res
		}
		return nil, err
	}

	p.existing[id] = res
	p.created = append(p.created, res.Name)
	return &provider.Created{
		ID: id,
		Outputs: map[string]string{
			"id":   id,
			"name": res.Name,
		},
	}, nil
}

func (p *Provider) Delete(ctx context.Context, kind plan.Kind, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := p.DeleteErr[id]; ok {
		return err
	}
	// Deleting an identifier that no longer exists is success.
	delete(p.existing, id)
	p.deleted = append(p.deleted, id)
	return nil
}

func (p *Provider) Get(ctx context.Context, kind plan.Kind, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := p.existing[id]
	return ok, nil
}

func (p *Provider) ResourceID(res provider.Resource) (string, error) {
	return fakeID(res.Kind, res.Name), nil
}

// Created returns resource names in the order they were created.
func (p *Provider) Created() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.created))
	copy(out, p.created)
	return out
}

// Deleted returns resource ids in the order deletions were issued.
func (p *Provider) Deleted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.deleted))
	copy(out, p.deleted)
	return out
}

// Existing reports whether a resource id currently exists.
func (p *Provider) Existing(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.existing[id]
	return ok
}

// Calls returns the total number of provider calls issued.
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func fakeID(kind plan.Kind, name string) string {
	return fmt.Sprintf("fake://%s/%s", kind, name)
}
