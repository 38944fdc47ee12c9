package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/pkg/converter"
	"flight-unifier-service/pkg/logger"
	"flight-unifier-service/pkg/metrics"
)

// fakeConverter reads {"flights": [{"id", "fare", "capacity", "fail"}]}
type fakeConverter struct {
	provider entity.Provider
}

func (c *fakeConverter) Provider() entity.Provider { return c.provider }

func (c *fakeConverter) Flights(payload map[string]interface{}) ([]interface{}, error) {
	raw, ok := payload["flights"]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New("flights is not a list")
	}
	return list, nil
}

func (c *fakeConverter) Convert(raw interface{}) ([]entity.UnifiedFlight, error) {
	m := raw.(map[string]interface{})
	if fail, _ := m["fail"].(bool); fail {
		return nil, converter.ErrMissingField
	}
	id := m["id"].(string)
	return []entity.UnifiedFlight{{
		FlightID:       "F-" + id,
		BaseFlightID:   "BASE-" + id,
		ProviderSource: c.provider,
		Pricing:        entity.Pricing{Adult: entity.Fare{TotalFare: int64(m["fare"].(float64))}},
		TicketInfo:     entity.TicketInfo{Capacity: int(m["capacity"].(float64))},
	}}, nil
}

type fakeRouter struct {
	convs map[entity.Provider]converter.Converter
	order []entity.Provider
}

func newFakeRouter(providers ...entity.Provider) *fakeRouter {
	r := &fakeRouter{convs: map[entity.Provider]converter.Converter{}}
	for _, p := range providers {
		r.Register(&fakeConverter{provider: p})
	}
	return r
}

func (r *fakeRouter) Register(c converter.Converter) {
	r.convs[c.Provider()] = c
	r.order = append(r.order, c.Provider())
}

func (r *fakeRouter) GetConverter(p entity.Provider) converter.Converter { return r.convs[p] }

func (r *fakeRouter) Providers() []entity.Provider { return r.order }

type fakeFlightRepo struct {
	mu      sync.Mutex
	records map[string]entity.UnifiedFlight
	err     error
	// failFor fails upserts of one provider's records
	failFor map[entity.Provider]error
}

func newFakeFlightRepo() *fakeFlightRepo {
	return &fakeFlightRepo{records: map[string]entity.UnifiedFlight{}}
}

func offerKey(provider entity.Provider, flightID string) string {
	return string(provider) + ":" + flightID
}

func (r *fakeFlightRepo) UpsertMany(_ context.Context, records []entity.UnifiedFlight) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(records) > 0 {
		if err := r.failFor[records[0].ProviderSource]; err != nil {
			return 0, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.records[offerKey(rec.ProviderSource, rec.FlightID)] = rec
	}
	return len(records), nil
}

func (r *fakeFlightRepo) FindOffer(_ context.Context, provider entity.Provider, id string) (*entity.UnifiedFlight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[offerKey(provider, id)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &rec, nil
}

func (r *fakeFlightRepo) FindByBaseFlightID(_ context.Context, base string) ([]entity.UnifiedFlight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.UnifiedFlight
	for _, rec := range r.records {
		if rec.BaseFlightID == base {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeOfferIndex struct {
	mu     sync.Mutex
	offers map[string][]entity.OfferSummary
	err    error
}

func newFakeOfferIndex() *fakeOfferIndex {
	return &fakeOfferIndex{offers: map[string][]entity.OfferSummary{}}
}

func (i *fakeOfferIndex) Index(_ context.Context, records []entity.UnifiedFlight) error {
	if i.err != nil {
		return i.err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	for idx := range records {
		s := records[idx].Summary()
		replaced := false
		for j, o := range i.offers[s.BaseFlightID] {
			if o.Provider == s.Provider && o.FlightID == s.FlightID {
				i.offers[s.BaseFlightID][j] = s
				replaced = true
			}
		}
		if !replaced {
			i.offers[s.BaseFlightID] = append(i.offers[s.BaseFlightID], s)
		}
	}
	return nil
}

func (i *fakeOfferIndex) Offers(_ context.Context, base string) ([]entity.OfferSummary, error) {
	if i.err != nil {
		return nil, i.err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.offers[base], nil
}

type fakeRunRepo struct {
	runs          map[string]*entity.IngestionRun
	statusHistory []string
	resetCalls    int
	// markErrs fail the next MarkAsProcessed calls, one per entry
	markErrs []error
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: map[string]*entity.IngestionRun{}}
}

func (r *fakeRunRepo) Create(_ context.Context, run *entity.IngestionRun) error {
	if _, dup := r.runs[run.BatchID]; dup {
		return fmt.Errorf("duplicate batch %s", run.BatchID)
	}
	r.runs[run.BatchID] = run
	r.statusHistory = append(r.statusHistory, run.ProcessStatus)
	return nil
}

func (r *fakeRunRepo) FindByBatchID(_ context.Context, id string) (*entity.IngestionRun, error) {
	run, ok := r.runs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return run, nil
}

func (r *fakeRunRepo) UpdateStatus(_ context.Context, id, status string, startedAt time.Time) error {
	run := r.runs[id]
	run.ProcessStatus = status
	run.ProcessStartedAt = startedAt
	r.statusHistory = append(r.statusHistory, status)
	return nil
}

func (r *fakeRunRepo) MarkAsProcessed(_ context.Context, id, status, detail string, counts entity.RunCounts, skips []entity.SkipReason) error {
	if len(r.markErrs) > 0 {
		err := r.markErrs[0]
		r.markErrs = r.markErrs[1:]
		return err
	}
	run := r.runs[id]
	run.ProcessStatus = status
	run.ErrorDetail = detail
	run.Counts = counts
	run.SkipReasons = skips
	r.statusHistory = append(r.statusHistory, status)
	return nil
}

func (r *fakeRunRepo) ResetProcessingRuns(context.Context) error {
	r.resetCalls++
	return nil
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics("test", prometheus.NewRegistry())
}

func newTestService(repo *fakeFlightRepo, idx *fakeOfferIndex, providers ...entity.Provider) *UnificationService {
	return NewUnificationService(newFakeRouter(providers...), repo, idx, newTestMetrics(), logger.NewNopLogger())
}

func flight(id string, fare, capacity float64) map[string]interface{} {
	return map[string]interface{}{"id": id, "fare": fare, "capacity": capacity}
}

func payloadOf(flights ...map[string]interface{}) map[string]interface{} {
	list := make([]interface{}, len(flights))
	for i, f := range flights {
		list[i] = f
	}
	return map[string]interface{}{"flights": list}
}
