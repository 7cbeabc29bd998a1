package application_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockguard/mockguard/internal/adapters/outbound/body"
	"github.com/mockguard/mockguard/internal/adapters/outbound/contract"
	"github.com/mockguard/mockguard/internal/adapters/outbound/mappings"
	"github.com/mockguard/mockguard/internal/application"
	"github.com/mockguard/mockguard/internal/domain"
)

const (
	petstoreContract = "../../testdata/petstore/openapi.yaml"
	petstoreMappings = "../../testdata/petstore/mappings"
	petstoreClean    = "../../testdata/petstore/clean"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newService(opts ...application.ServiceOption) *application.ValidationService {
	opts = append([]application.ServiceOption{application.WithClock(func() time.Time { return fixedNow })}, opts...)
	return application.NewValidationService(contract.New(), mappings.New(), body.New(), opts...)
}

func TestValidationService_Petstore(t *testing.T) {
	res, err := newService().Validate(context.Background(), application.ValidateOptions{
		ContractPath: petstoreContract,
		MappingsDir:  petstoreMappings,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Fixtures, "missing-response.json is incomplete and not counted")
	assert.Len(t, res.Findings, 29)
	assert.Equal(t, 24, res.Count(domain.VerdictPassed))
	assert.Equal(t, 4, res.Count(domain.VerdictWarning))
	assert.Equal(t, 1, res.Count(domain.VerdictFailed))
	assert.Equal(t, 0, res.Count(domain.VerdictError))
	assert.False(t, res.Valid())
	assert.Equal(t, fixedNow, res.Timestamp)

	// list-pets.json sorts first, unknown-path.json last.
	first := res.Findings[0]
	assert.Equal(t, domain.CheckURLMatch, first.Kind)
	assert.Equal(t, "/pets", first.Name)
	assert.Equal(t, "list-pets.json", first.Fixture)

	last := res.Findings[len(res.Findings)-1]
	assert.Equal(t, domain.Fail(domain.CheckURLMatch, "/stores", "no contract path matches pattern '/stores'").Description, last.Description)
	assert.Equal(t, domain.VerdictFailed, last.Verdict)
	assert.Equal(t, "unknown-path.json", last.Fixture)
}

func TestValidationService_PetstoreFindingsPerFixture(t *testing.T) {
	res, err := newService().Validate(context.Background(), application.ValidateOptions{
		ContractPath: petstoreContract,
		MappingsDir:  petstoreMappings,
	})
	require.NoError(t, err)

	perFixture := make(map[string]int)
	for _, f := range res.Findings {
		perFixture[f.Fixture]++
	}
	assert.Equal(t, map[string]int{
		"list-pets.json":    12,
		"show-pet.json":     16,
		"unknown-path.json": 1,
	}, perFixture)

	assert.Contains(t, res.Findings, withFixture(
		domain.Warn(domain.CheckResponsePropertyRequired, domain.ResponseName("showPetById", "tag"),
			"optional property 'tag' not present in mock"), "show-pet.json"))
	assert.Contains(t, res.Findings, withFixture(
		domain.Pass(domain.CheckParamType, domain.RequestName("showPetById", "since")), "show-pet.json"))
}

func TestValidationService_CleanMappingsAreValid(t *testing.T) {
	res, err := newService().Validate(context.Background(), application.ValidateOptions{
		ContractPath: petstoreContract,
		MappingsDir:  petstoreClean,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Fixtures)
	assert.Len(t, res.Findings, 28)
	assert.Equal(t, 4, res.Count(domain.VerdictWarning))
	assert.True(t, res.Valid(), "warnings alone keep the run valid")
	assert.False(t, res.GateFailed(false))
	assert.True(t, res.GateFailed(true))
}

func TestValidationService_Deterministic(t *testing.T) {
	opts := application.ValidateOptions{ContractPath: petstoreContract, MappingsDir: petstoreMappings}

	first, err := newService().Validate(context.Background(), opts)
	require.NoError(t, err)
	second, err := newService().Validate(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidationService_WorkersKeepListingOrder(t *testing.T) {
	sequential, err := newService().Validate(context.Background(), application.ValidateOptions{
		ContractPath: petstoreContract, MappingsDir: petstoreMappings, Workers: 1,
	})
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		parallel, err := newService().Validate(context.Background(), application.ValidateOptions{
			ContractPath: petstoreContract, MappingsDir: petstoreMappings, Workers: workers,
		})
		require.NoError(t, err)
		assert.Equal(t, sequential.Findings, parallel.Findings, "workers=%d", workers)
		assert.Equal(t, sequential.Fixtures, parallel.Fixtures)
	}
}

func TestValidationService_SkipKinds(t *testing.T) {
	res, err := newService().Validate(context.Background(), application.ValidateOptions{
		ContractPath: petstoreContract,
		MappingsDir:  petstoreMappings,
		Skip:         []domain.CheckKind{domain.CheckResponsePropertyType, domain.CheckResponsePropertyRequired},
	})
	require.NoError(t, err)

	for _, f := range res.Findings {
		assert.NotEqual(t, domain.CheckResponsePropertyType, f.Kind)
		assert.NotEqual(t, domain.CheckResponsePropertyRequired, f.Kind)
	}
	assert.Len(t, res.Findings, 13)
	assert.Equal(t, 0, res.Count(domain.VerdictWarning))
}

func TestValidationService_MalformedMappingBecomesError(t *testing.T) {
	dir := t.TempDir()
	mappingsDir := filepath.Join(dir, "mappings")
	require.NoError(t, os.MkdirAll(mappingsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(mappingsDir, "broken.json"), []byte(`{"request": `), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(mappingsDir, "other.json"), []byte(`{
		"request": {"method": "GET", "urlPath": "/stores"},
		"response": {"status": 200}
	}`), 0644))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := newService(application.WithLogger(logger)).Validate(context.Background(), application.ValidateOptions{
		ContractPath: petstoreContract,
		MappingsDir:  mappingsDir,
	})
	require.NoError(t, err, "a broken mapping must not abort the run")

	require.Len(t, res.Findings, 2)
	broken := res.Findings[0]
	assert.Equal(t, domain.VerdictError, broken.Verdict)
	assert.Equal(t, domain.CheckURLMatch, broken.Kind)
	assert.Equal(t, "broken.json", broken.Name)
	assert.Contains(t, broken.Description, "reading mapping")
	assert.Equal(t, domain.VerdictFailed, res.Findings[1].Verdict)
	assert.Equal(t, 1, res.Fixtures)

	assert.Contains(t, logs.String(), "skipping unreadable mapping")
}

func TestValidationService_MalformedBodyLogsAndContinues(t *testing.T) {
	dir := t.TempDir()
	mappingsDir := filepath.Join(dir, "mappings")
	require.NoError(t, os.MkdirAll(mappingsDir, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "__files"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "__files", "owners.json"), []byte(`{not json`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(mappingsDir, "owners.json"), []byte(`{
		"request": {"method": "GET", "urlPath": "/owners"},
		"response": {"status": 200, "bodyFileName": "owners.json"}
	}`), 0644))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	res, err := newService(application.WithLogger(logger)).Validate(context.Background(), application.ValidateOptions{
		ContractPath: petstoreContract,
		MappingsDir:  mappingsDir,
	})
	require.NoError(t, err)

	// The body is treated as empty: the required id fails, the optional name warns.
	assert.Contains(t, res.Findings, withFixture(
		domain.Fail(domain.CheckResponsePropertyRequired, domain.ResponseName("listOwners", "id"),
			"required property 'id' not present in mock"), "owners.json"))
	assert.Contains(t, res.Findings, withFixture(
		domain.Warn(domain.CheckResponsePropertyRequired, domain.ResponseName("listOwners", "name"),
			"optional property 'name' not present in mock"), "owners.json"))
	assert.Contains(t, logs.String(), "cannot read mock response body")
}

func TestValidationService_ContractErrors(t *testing.T) {
	_, err := newService().Validate(context.Background(), application.ValidateOptions{
		ContractPath: "does/not/exist.yaml",
		MappingsDir:  petstoreMappings,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading contract")

	_, err = newService().Validate(context.Background(), application.ValidateOptions{
		ContractPath: petstoreContract,
		MappingsDir:  "does/not/exist",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing mappings")
}

func TestValidationService_Cancelled(t *testing.T) {
	for _, workers := range []int{1, 4} {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		src := &fakeSource{files: []string{"a.json", "b.json", "c.json"}}
		svc := application.NewValidationService(staticContract{}, src, noBody{})

		_, err := svc.Validate(ctx, application.ValidateOptions{MappingsDir: "m", Workers: workers})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Contains(t, err.Error(), "validating mappings")
		assert.Zero(t, src.loads.Load(), "no file is checked after cancellation")
	}
}

func TestValidationService_WorkerPoolIsBounded(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = filepath.Join("m", string(rune('a'+i))+".json")
	}
	src := &fakeSource{files: files, delay: 5 * time.Millisecond}
	svc := application.NewValidationService(staticContract{}, src, noBody{})

	res, err := svc.Validate(context.Background(), application.ValidateOptions{MappingsDir: "m", Workers: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(20), src.loads.Load())
	assert.LessOrEqual(t, src.peak.Load(), int64(3))
	assert.Equal(t, 20, res.Fixtures)
	require.Len(t, res.Findings, 20*2)
	for i, f := range files {
		assert.Equal(t, filepath.Base(f), res.Findings[i*2].Fixture)
	}
}

func TestValidationService_CheckFixture(t *testing.T) {
	svc := newService()
	c, err := contract.New().Load(context.Background(), petstoreContract)
	require.NoError(t, err)

	fx := domain.Fixture{
		Name:     "inline",
		Request:  &domain.FixtureRequest{Method: "DELETE", URLPattern: "/owners"},
		Response: &domain.FixtureResponse{Status: 204},
	}
	findings := svc.CheckFixture(c, petstoreMappings, fx)
	require.Len(t, findings, 2)
	assert.Equal(t, domain.VerdictPassed, findings[0].Verdict)
	assert.Equal(t, domain.VerdictFailed, findings[1].Verdict)
	assert.Equal(t, "createOwner - DELETE", findings[1].Name)
}

func withFixture(f domain.Finding, fixture string) domain.Finding {
	f.Fixture = fixture
	return f
}

// staticContract declares one path with a GET and no parameters.
type staticContract struct{}

func (staticContract) Load(context.Context, string) (*domain.Contract, error) {
	return &domain.Contract{Paths: []domain.PathItem{{
		Template:   "/things",
		Operations: []domain.Operation{{Method: domain.MethodGet, ID: "listThings"}},
	}}}, nil
}

type fakeSource struct {
	files    []string
	delay    time.Duration
	loads    atomic.Int64
	inflight atomic.Int64
	peak     atomic.Int64
}

func (s *fakeSource) List(string) ([]string, error) { return s.files, nil }

func (s *fakeSource) Load(p string) ([]domain.Fixture, error) {
	s.loads.Add(1)
	n := s.inflight.Add(1)
	defer s.inflight.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(s.delay)

	return []domain.Fixture{{
		Name:     filepath.Base(p),
		Request:  &domain.FixtureRequest{Method: "GET", URLPattern: "/things"},
		Response: &domain.FixtureResponse{Status: 200},
	}}, nil
}

type noBody struct{}

func (noBody) Read(string, *domain.FixtureResponse) (*domain.BodyProperties, error) { return nil, nil }
