package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/agrilabs/fivetran-sync-agent/api/v1"
	"github.com/agrilabs/fivetran-sync-agent/internal/config"
	"github.com/agrilabs/fivetran-sync-agent/internal/handlers"
	"github.com/agrilabs/fivetran-sync-agent/internal/models"
	"github.com/agrilabs/fivetran-sync-agent/internal/services"
	"github.com/agrilabs/fivetran-sync-agent/internal/store"
	"github.com/agrilabs/fivetran-sync-agent/internal/store/migrations"
	"github.com/agrilabs/fivetran-sync-agent/pkg/scheduler"
)

func TestHandlers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Handlers Suite")
}

// stubConnectorAPI reports a fixed sync state and accepts every mutation.
type stubConnectorAPI struct {
	state models.SyncState
}

func (s stubConnectorAPI) GetSyncStatus(ctx context.Context, connectorID string) (models.SyncState, error) {
	return s.state, nil
}

func (s stubConnectorAPI) SetPaused(ctx context.Context, connectorID string, paused bool) error {
	return nil
}

var _ = Describe("Sync API", func() {
	var (
		db     *sql.DB
		s      *store.Store
		sched  *scheduler.Scheduler
		engine *gin.Engine
		stub   stubConnectorAPI
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		stub = stubConnectorAPI{state: models.SyncStateRescheduled}

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(context.Background(), db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
		sched = scheduler.NewScheduler(1)

		registry, err := services.NewConnectorRegistry(map[string]string{
			"hubspot": "embarkation_cropped",
		})
		Expect(err).NotTo(HaveOccurred())

		cfg := config.Agent{
			NumWorkers:   1,
			SettleDelay:  5 * time.Millisecond,
			PollInterval: 5 * time.Millisecond,
			MaxSyncWait:  time.Second,
		}
		secrets := services.NewStoreSecretProvider(s)
		factory := func(creds models.Credentials) services.ConnectorAPI { return stub }
		orch := services.NewSyncOrchestrator(cfg, "fivetran_bi_service", sched, registry, secrets, factory)

		h := handlers.New(orch, s, "fivetran_bi_service")
		engine = gin.New()
		v1.RegisterHandlers(engine.Group("/api/v1"), h)
	})

	AfterEach(func() {
		sched.Close()
		if db != nil {
			db.Close()
		}
	})

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		} else {
			reader = bytes.NewReader(nil)
		}

		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)
		return recorder
	}

	putCredentials := func() {
		resp := do(http.MethodPut, "/api/v1/credentials", v1.CredentialsRequest{
			APIKey:    "key",
			APISecret: "secret",
		})
		Expect(resp.Code).To(Equal(http.StatusNoContent))
	}

	It("should report no run before the first trigger", func() {
		resp := do(http.MethodGet, "/api/v1/sync", nil)
		Expect(resp.Code).To(Equal(http.StatusNotFound))
	})

	It("should refuse to trigger a run before credentials are stored", func() {
		resp := do(http.MethodPost, "/api/v1/sync", v1.SyncRunRequest{Connector: "hubspot"})
		Expect(resp.Code).To(Equal(http.StatusPreconditionFailed))
	})

	It("should reject an unknown connector name", func() {
		putCredentials()
		resp := do(http.MethodPost, "/api/v1/sync", v1.SyncRunRequest{Connector: "not_a_connector"})
		Expect(resp.Code).To(Equal(http.StatusBadRequest))
	})

	It("should trigger a run and report it done", func() {
		putCredentials()

		resp := do(http.MethodPost, "/api/v1/sync", v1.SyncRunRequest{Connector: "hubspot"})
		Expect(resp.Code).To(Equal(http.StatusAccepted))

		var accepted v1.SyncRunStatus
		Expect(json.Unmarshal(resp.Body.Bytes(), &accepted)).To(Succeed())
		Expect(accepted.RunID).NotTo(BeEmpty())
		Expect(accepted.Connector).To(Equal("hubspot"))

		Eventually(func() string {
			resp := do(http.MethodGet, "/api/v1/sync", nil)
			var status v1.SyncRunStatus
			_ = json.Unmarshal(resp.Body.Bytes(), &status)
			return status.Phase
		}).Should(Equal(string(models.RunPhaseDone)))
	})

	It("should refuse a second run and allow cancelling the first", func() {
		stub = stubConnectorAPI{state: models.SyncStateSyncing}
		putCredentials()

		resp := do(http.MethodPost, "/api/v1/sync", v1.SyncRunRequest{Connector: "hubspot"})
		Expect(resp.Code).To(Equal(http.StatusAccepted))

		resp = do(http.MethodPost, "/api/v1/sync", v1.SyncRunRequest{Connector: "hubspot"})
		Expect(resp.Code).To(Equal(http.StatusConflict))

		resp = do(http.MethodDelete, "/api/v1/sync", nil)
		Expect(resp.Code).To(Equal(http.StatusNoContent))

		Eventually(func() string {
			resp := do(http.MethodGet, "/api/v1/sync", nil)
			var status v1.SyncRunStatus
			_ = json.Unmarshal(resp.Body.Bytes(), &status)
			return status.Phase
		}).Should(Equal(string(models.RunPhaseError)))
	})

	It("should report no active run on cancel when idle", func() {
		resp := do(http.MethodDelete, "/api/v1/sync", nil)
		Expect(resp.Code).To(Equal(http.StatusNotFound))
	})
})
