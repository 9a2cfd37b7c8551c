package services_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agrilabs/fivetran-sync-agent/internal/services"
	"github.com/agrilabs/fivetran-sync-agent/internal/store"
	"github.com/agrilabs/fivetran-sync-agent/internal/store/migrations"
)

var _ = Describe("Secret providers", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("EnvSecretProvider", func() {
		It("should read <SCOPE>_<KEY> uppercased from the environment", func() {
			Expect(os.Setenv("FIVETRAN_BI_SERVICE_API_KEY", "from-env")).To(Succeed())
			DeferCleanup(os.Unsetenv, "FIVETRAN_BI_SERVICE_API_KEY")

			value, err := services.EnvSecretProvider{}.Get(ctx, "fivetran_bi_service", "api_key")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("from-env"))
		})

		It("should report missing variables as not found", func() {
			_, err := services.EnvSecretProvider{}.Get(ctx, "fivetran_bi_service", "no_such_key")
			Expect(err).To(MatchError(services.ErrSecretNotFound))
		})
	})

	Describe("StoreSecretProvider", func() {
		var s *store.Store

		BeforeEach(func() {
			db, err := store.NewDB(":memory:")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(func() { _ = db.Close() })

			Expect(migrations.Run(ctx, db)).To(Succeed())
			s = store.NewStore(db)
		})

		It("should return stored values and not-found otherwise", func() {
			Expect(s.Secrets().Save(ctx, "fivetran_bi_service", "api_key", "from-store")).To(Succeed())

			provider := services.NewStoreSecretProvider(s)
			value, err := provider.Get(ctx, "fivetran_bi_service", "api_key")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("from-store"))

			_, err = provider.Get(ctx, "fivetran_bi_service", "api_secret")
			Expect(err).To(MatchError(services.ErrSecretNotFound))
		})
	})

	Describe("ChainSecretProvider", func() {
		It("should prefer earlier providers and fall through on not-found", func() {
			chain := services.ChainSecretProvider{
				staticSecrets{"api_key": "first"},
				staticSecrets{"api_key": "second", "api_secret": "fallback"},
			}

			value, err := chain.Get(ctx, "scope", "api_key")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("first"))

			value, err = chain.Get(ctx, "scope", "api_secret")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("fallback"))

			_, err = chain.Get(ctx, "scope", "missing")
			Expect(err).To(MatchError(services.ErrSecretNotFound))
		})
	})

	Describe("LoadAPICredentials", func() {
		It("should resolve both halves of the credential pair", func() {
			provider := staticSecrets{"api_key": "key", "api_secret": "secret"}

			creds, err := services.LoadAPICredentials(ctx, provider, "fivetran_bi_service")
			Expect(err).NotTo(HaveOccurred())
			Expect(creds.APIKey).To(Equal("key"))
			Expect(creds.APISecret).To(Equal("secret"))
		})

		It("should fail when either half is missing", func() {
			provider := staticSecrets{"api_key": "key"}

			_, err := services.LoadAPICredentials(ctx, provider, "fivetran_bi_service")
			Expect(err).To(MatchError(services.ErrSecretNotFound))
		})
	})
})
