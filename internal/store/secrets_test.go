package store_test

import (
	"context"
	"database/sql"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agrilabs/fivetran-sync-agent/internal/store"
	"github.com/agrilabs/fivetran-sync-agent/internal/store/migrations"
)

func TestSecretStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Secret Store Suite")
}

var _ = Describe("SecretStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("Get", func() {
		It("should return ErrNotFound when no secret is stored", func() {
			_, err := s.Secrets().Get(ctx, "fivetran_bi_service", "api_key")
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("should return the stored secret", func() {
			err := s.Secrets().Save(ctx, "fivetran_bi_service", "api_key", "the-key")
			Expect(err).NotTo(HaveOccurred())

			secret, err := s.Secrets().Get(ctx, "fivetran_bi_service", "api_key")
			Expect(err).NotTo(HaveOccurred())
			Expect(secret.Scope).To(Equal("fivetran_bi_service"))
			Expect(secret.Key).To(Equal("api_key"))
			Expect(secret.Value).To(Equal("the-key"))
			Expect(secret.CreatedAt).NotTo(BeZero())
			Expect(secret.UpdatedAt).NotTo(BeZero())
		})

		It("should key secrets by scope and key", func() {
			Expect(s.Secrets().Save(ctx, "scope-a", "api_key", "a")).To(Succeed())
			Expect(s.Secrets().Save(ctx, "scope-b", "api_key", "b")).To(Succeed())

			secret, err := s.Secrets().Get(ctx, "scope-b", "api_key")
			Expect(err).NotTo(HaveOccurred())
			Expect(secret.Value).To(Equal("b"))
		})
	})

	Describe("Save", func() {
		It("should overwrite an existing secret", func() {
			Expect(s.Secrets().Save(ctx, "fivetran_bi_service", "api_key", "old")).To(Succeed())
			Expect(s.Secrets().Save(ctx, "fivetran_bi_service", "api_key", "new")).To(Succeed())

			secret, err := s.Secrets().Get(ctx, "fivetran_bi_service", "api_key")
			Expect(err).NotTo(HaveOccurred())
			Expect(secret.Value).To(Equal("new"))
		})
	})

	Describe("Delete", func() {
		It("should remove the secret", func() {
			Expect(s.Secrets().Save(ctx, "fivetran_bi_service", "api_key", "the-key")).To(Succeed())
			Expect(s.Secrets().Delete(ctx, "fivetran_bi_service", "api_key")).To(Succeed())

			_, err := s.Secrets().Get(ctx, "fivetran_bi_service", "api_key")
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("should not fail when the secret does not exist", func() {
			Expect(s.Secrets().Delete(ctx, "fivetran_bi_service", "api_key")).To(Succeed())
		})
	})
})
