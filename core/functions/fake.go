package functions

import (
	"context"

	"github.com/nic-paul/sqlbind/core/models"
)

// FakeApi records the calls made against the functions tooling. OnCreate
// runs after a CreateFunction call is recorded, letting tests materialize
// the scaffolded file.
type FakeApi struct {
	Created    []models.CreateFunctionRequest
	Bindings   []models.SqlBindingRequest
	CreateErr  error
	BindingErr error
	OnCreate   func(dir string, req models.CreateFunctionRequest)
}

func (f *FakeApi) CreateFunction(ctx context.Context, dir string, req models.CreateFunctionRequest) error {
	f.Created = append(f.Created, req)
	if f.CreateErr != nil {
		return f.CreateErr
	}
	if f.OnCreate != nil {
		f.OnCreate(dir, req)
	}
	return nil
}

func (f *FakeApi) AddSqlBinding(ctx context.Context, req models.SqlBindingRequest) error {
	f.Bindings = append(f.Bindings, req)
	return f.BindingErr
}

// FakeProvider hands out a FakeApi, or Err when set.
type FakeProvider struct {
	Api *FakeApi
	Err error
}

func (p *FakeProvider) Functions() (Api, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Api, nil
}
