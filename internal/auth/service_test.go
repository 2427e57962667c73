package auth

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/frahmantamala/employee-management/internal"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock credential repository for testing
type mockRepository struct {
	credentials   map[string]string // username -> password hash
	roles         map[string]Role   // username -> role
	returnError   bool
	errorToReturn error
}

func newMockRepository() *mockRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	return &mockRepository{
		credentials: map[string]string{
			"jdoe":  string(hashedPassword),
			"admin": string(hashedPassword),
		},
		roles: map[string]Role{
			"jdoe":  RoleUser,
			"admin": RoleAdmin,
		},
	}
}

func (m *mockRepository) GetCredential(username string) (string, Role, error) {
	if m.returnError {
		return "", "", m.errorToReturn
	}

	hash, exists := m.credentials[username]
	if !exists {
		return "", "", apperrors.ErrInvalidCredentials
	}
	return hash, m.roles[username], nil
}

var _ = ginkgo.Describe("Auth Service", func() {
	var (
		repo     *mockRepository
		tokenGen *JWTTokenGenerator
		service  *Service
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		tokenGen = NewJWTTokenGenerator("test-secret-key-with-enough-length", time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = NewService(repo, tokenGen, logger)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("with valid credentials", func() {
			ginkgo.It("should return a token carrying username and role", func() {
				resp, err := service.Authenticate(LoginDTO{Username: "admin", Password: "correct_password"})
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(resp).NotTo(gomega.BeNil())
				gomega.Expect(resp.Token).NotTo(gomega.BeEmpty())
				gomega.Expect(resp.Username).To(gomega.Equal("admin"))
				gomega.Expect(resp.Role).To(gomega.Equal(RoleAdmin))

				claims, err := tokenGen.ValidateToken(resp.Token)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(claims.Username).To(gomega.Equal("admin"))
				gomega.Expect(claims.Role).To(gomega.Equal(RoleAdmin))
			})

			ginkgo.It("should issue user-role tokens for regular accounts", func() {
				resp, err := service.Authenticate(LoginDTO{Username: "jdoe", Password: "correct_password"})
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(resp.Role).To(gomega.Equal(RoleUser))
			})
		})

		ginkgo.Context("with a wrong password", func() {
			ginkgo.It("should fail with invalid credentials", func() {
				resp, err := service.Authenticate(LoginDTO{Username: "jdoe", Password: "wrong_password"})
				gomega.Expect(err).To(gomega.Equal(apperrors.ErrInvalidCredentials))
				gomega.Expect(resp).To(gomega.BeNil())
			})
		})

		ginkgo.Context("with an unknown username", func() {
			ginkgo.It("should fail with invalid credentials, not a not-found error", func() {
				resp, err := service.Authenticate(LoginDTO{Username: "ghost", Password: "correct_password"})
				gomega.Expect(err).To(gomega.Equal(apperrors.ErrInvalidCredentials))
				gomega.Expect(resp).To(gomega.BeNil())
			})
		})

		ginkgo.Context("with missing fields", func() {
			ginkgo.It("should fail validation on blank username", func() {
				_, err := service.Authenticate(LoginDTO{Username: "", Password: "x"})
				appErr, ok := apperrors.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Type).To(gomega.Equal(apperrors.ErrorTypeValidation))
			})

			ginkgo.It("should fail validation on blank password", func() {
				_, err := service.Authenticate(LoginDTO{Username: "jdoe", Password: ""})
				appErr, ok := apperrors.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Type).To(gomega.Equal(apperrors.ErrorTypeValidation))
			})
		})
	})

	ginkgo.Describe("ValidateToken", func() {
		ginkgo.It("should round-trip claims through a signed token", func() {
			token, err := tokenGen.GenerateAccessToken("jdoe", RoleUser)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			claims, err := tokenGen.ValidateToken(token)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.Username).To(gomega.Equal("jdoe"))
			gomega.Expect(claims.Role).To(gomega.Equal(RoleUser))
			gomega.Expect(claims.Subject).To(gomega.Equal("jdoe"))
		})

		ginkgo.It("should reject an expired token distinctly", func() {
			expiredGen := NewJWTTokenGenerator("test-secret-key-with-enough-length", -time.Minute)
			token, err := expiredGen.GenerateAccessToken("jdoe", RoleUser)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrTokenExpired))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			otherGen := NewJWTTokenGenerator("a-completely-different-signing-key", time.Hour)
			token, err := otherGen.GenerateAccessToken("jdoe", RoleUser)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrInvalidToken))
		})

		ginkgo.It("should reject garbage tokens", func() {
			_, err := tokenGen.ValidateToken("not.a.token")
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrInvalidToken))
		})

		ginkgo.It("should reject tokens asserting an unknown role", func() {
			token, err := tokenGen.GenerateAccessToken("jdoe", Role("superuser"))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrInvalidToken))
		})
	})
})
