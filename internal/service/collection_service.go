package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"netstorctl/internal/collection"
	"netstorctl/pkg/backend"
	"netstorctl/pkg/remotefs"
)

type Role string

const (
	RoleStorage Role = "storage"
	RoleTarget  Role = "target"
)

// roleOrder fixes the processing order: storage first, then target.
var roleOrder = []Role{RoleStorage, RoleTarget}

// Resolver maps a collection name to its declared backends.
type Resolver interface {
	Get(name string) (collection.Spec, bool)
	Names() []string
}

// BackendFactory turns a role's spec into a live backend.
type BackendFactory interface {
	New(displayName string, spec collection.BackendSpec) (backend.Backend, error)
}

type CollectionService struct {
	registry Resolver
	factory  BackendFactory
	logger   *slog.Logger
}

func NewCollectionService(registry Resolver, factory BackendFactory, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		registry: registry,
		factory:  factory,
		logger:   logger.With("service", "CollectionService"),
	}
}

// roleBackend is one resolved role of a collection. Backend is nil when the
// role declares no backend.
type roleBackend struct {
	role    Role
	typ     backend.Type
	backend backend.Backend
}

func (s *CollectionService) resolve(name string) ([]roleBackend, error) {
	spec, exists := s.registry.Get(name)
	if !exists {
		return nil, fmt.Errorf("unknown collection %q. Declared collections: %v", name, s.registry.Names())
	}

	var roles []roleBackend
	for _, role := range roleOrder {
		backendSpec := spec.Storage
		if role == RoleTarget {
			backendSpec = spec.Target
		}
		if backendSpec == nil {
			roles = append(roles, roleBackend{role: role})
			continue
		}

		b, err := s.factory.New(name+"/"+string(role), *backendSpec)
		if err != nil {
			return nil, err
		}
		roles = append(roles, roleBackend{
			role:    role,
			typ:     b.BackendType(),
			backend: b,
		})
	}
	return roles, nil
}

func closeAll(roles []roleBackend, logger *slog.Logger) {
	for _, r := range roles {
		if r.backend == nil {
			continue
		}
		if err := r.backend.Close(); err != nil {
			logger.Debug("closing backend", "role", r.role, "error", err)
		}
	}
}

// ConnectionStatus is the result of probing one role.
type ConnectionStatus struct {
	Role   Role
	Type   backend.Type
	Absent bool
	Err    error
}

// TestConnections probes every configured role of the collection. The two
// roles are independent, so they are probed in parallel; a failing probe is
// reported per role, never as an overall failure.
func (s *CollectionService) TestConnections(ctx context.Context, name string) ([]ConnectionStatus, error) {
	roles, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	defer closeAll(roles, s.logger)

	statuses := make([]ConnectionStatus, len(roles))
	g, ctx := errgroup.WithContext(ctx)
	for i, r := range roles {
		i, r := i, r
		statuses[i] = ConnectionStatus{Role: r.role, Type: r.typ, Absent: r.backend == nil}
		if r.backend == nil {
			continue
		}
		g.Go(func() error {
			statuses[i].Err = r.backend.TestConnection(ctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// RoleListing is the recursive content listing of one role.
type RoleListing struct {
	Role      Role
	Type      backend.Type
	Absent    bool
	Connector bool
	Root      *remotefs.Entry
	Err       error
}

// ContentLists fetches the recursive listing for every NetStorage-backed
// role. Roles backed by another store are reported, not listed.
func (s *CollectionService) ContentLists(ctx context.Context, name string) ([]RoleListing, error) {
	roles, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	defer closeAll(roles, s.logger)

	listings := make([]RoleListing, len(roles))
	g, _ := errgroup.WithContext(ctx)
	for i, r := range roles {
		i, r := i, r
		listings[i] = RoleListing{Role: r.role, Type: r.typ, Absent: r.backend == nil}
		connector, ok := r.backend.(backend.Connector)
		if !ok {
			continue
		}
		listings[i].Connector = true
		g.Go(func() error {
			listings[i].Root, listings[i].Err = connector.GetContentList()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return listings, nil
}

// RolePaths is the flattened deepest-first path list of one role.
type RolePaths struct {
	Role      Role
	Type      backend.Type
	Absent    bool
	Connector bool
	Paths     []string
	Err       error
}

// ContentPaths collects the flattened path list for every NetStorage-backed
// role.
func (s *CollectionService) ContentPaths(ctx context.Context, name string) ([]RolePaths, error) {
	roles, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	defer closeAll(roles, s.logger)

	paths := make([]RolePaths, len(roles))
	g, _ := errgroup.WithContext(ctx)
	for i, r := range roles {
		i, r := i, r
		paths[i] = RolePaths{Role: r.role, Type: r.typ, Absent: r.backend == nil}
		connector, ok := r.backend.(backend.Connector)
		if !ok {
			continue
		}
		paths[i].Connector = true
		g.Go(func() error {
			paths[i].Paths, paths[i].Err = connector.CollectAllPaths()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// OverviewRow describes one collection's declared backend types.
type OverviewRow struct {
	Name    string
	Storage string
	Target  string
}

// Overview summarizes every declared collection without initializing any
// backend.
func (s *CollectionService) Overview() []OverviewRow {
	names := s.registry.Names()
	sort.Strings(names)

	rows := make([]OverviewRow, 0, len(names))
	for _, name := range names {
		spec, _ := s.registry.Get(name)
		rows = append(rows, OverviewRow{
			Name:    name,
			Storage: specType(spec.Storage),
			Target:  specType(spec.Target),
		})
	}
	return rows
}

func specType(spec *collection.BackendSpec) string {
	if spec == nil {
		return "-"
	}
	return spec.Type
}

// Nuke removes every file of every NetStorage-backed role, storage before
// target, strictly sequentially. Progress goes to out; a failing role does
// not stop the remaining roles.
func (s *CollectionService) Nuke(ctx context.Context, name string, out io.Writer) error {
	roles, err := s.resolve(name)
	if err != nil {
		return err
	}
	defer closeAll(roles, s.logger)

	var errs []error
	for _, r := range roles {
		switch {
		case r.backend == nil:
			fmt.Fprintf(out, "%s/%s: no backend configured\n", name, r.role)
		default:
			connector, ok := r.backend.(backend.Connector)
			if !ok {
				fmt.Fprintf(out, "%s/%s: not NetStorage-backed (%s), skipping\n", name, r.role, r.typ)
				continue
			}
			fmt.Fprintf(out, "Removing all files from %s/%s\n", name, r.role)
			if err := connector.RemoveAllFiles(out); err != nil {
				fmt.Fprintf(out, "%s/%s: %v\n", name, r.role, err)
				errs = append(errs, fmt.Errorf("%s/%s: %w", name, r.role, err))
			}
		}
	}
	return errors.Join(errs...)
}
