package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"directory-sync-service/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/option"
)

// GoogleConfig определяет параметры доступа к Google Workspace Directory API.
type GoogleConfig struct {
	Credentials    []byte
	Subject        string
	CustomerID     string
	PageSize       int64
	IncludeDeleted bool
}

// GoogleFetcher получает пользователей организации из Google Workspace
// Directory API и реализует domain.DirectoryFetcher.
type GoogleFetcher struct {
	cfg     GoogleConfig
	log     *logrus.Logger
	limiter *rate.Limiter
	opts    []option.ClientOption
}

// NewGoogleFetcher создает новый экземпляр GoogleFetcher. Дополнительные
// опции клиента передаются в тестах для подмены эндпоинта API.
func NewGoogleFetcher(cfg GoogleConfig, log *logrus.Logger, opts ...option.ClientOption) *GoogleFetcher {
	if cfg.CustomerID == "" {
		cfg.CustomerID = "my_customer"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 500
	}

	return &GoogleFetcher{
		cfg: cfg,
		log: log,
		// Directory API ограничивает частоту запросов на проект
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		opts:    opts,
	}
}

// FetchDirectoryUsers возвращает полный список пользователей каталога,
// включая удаленных, если интеграция настроена их учитывать.
func (f *GoogleFetcher) FetchDirectoryUsers(ctx context.Context, integration *domain.Integration) ([]domain.DirectoryUser, error) {
	service, err := f.newService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build directory client: %w", err)
	}

	users, err := f.listUsers(ctx, service, false)
	if err != nil {
		return nil, err
	}

	if f.cfg.IncludeDeleted {
		deleted, err := f.listUsers(ctx, service, true)
		if err != nil {
			return nil, err
		}
		users = append(users, deleted...)
	}

	f.log.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"users":          len(users),
	}).Info("fetched directory users")

	return users, nil
}

func (f *GoogleFetcher) newService(ctx context.Context) (*admin.Service, error) {
	if len(f.opts) > 0 {
		// В тестах клиент собирается без учетных данных
		return admin.NewService(ctx, f.opts...)
	}

	params := google.CredentialsParams{
		Scopes:  []string{admin.AdminDirectoryUserReadonlyScope},
		Subject: f.cfg.Subject,
	}
	cred, err := google.CredentialsFromJSONWithParams(ctx, f.cfg.Credentials, params)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}

	return admin.NewService(ctx, option.WithCredentials(cred))
}

func (f *GoogleFetcher) listUsers(ctx context.Context, service *admin.Service, deleted bool) ([]domain.DirectoryUser, error) {
	users := make([]domain.DirectoryUser, 0)

	pageToken := ""
	for {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := service.Users.List().
			Customer(f.cfg.CustomerID).
			MaxResults(f.cfg.PageSize).
			PageToken(pageToken).
			Context(ctx)
		if deleted {
			call = call.ShowDeleted("true")
		}

		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list directory users: %w", err)
		}

		for _, u := range page.Users {
			users = append(users, toDirectoryUser(u, deleted))
		}

		if page.NextPageToken == "" {
			return users, nil
		}
		pageToken = page.NextPageToken
	}
}

func toDirectoryUser(u *admin.User, deleted bool) domain.DirectoryUser {
	user := domain.DirectoryUser{
		ExternalID:  u.Id,
		Email:       u.PrimaryEmail,
		JobTitle:    primaryField(u.Organizations, "title"),
		PhoneNumber: primaryField(u.Phones, "value"),
		Status:      userStatus(u, deleted),
	}

	if u.Name != nil {
		if u.Name.FullName != "" {
			user.FullName = u.Name.FullName
		} else {
			user.FullName = strings.TrimSpace(strings.Join([]string{u.Name.GivenName, u.Name.FamilyName}, " "))
		}
	}

	if u.CreationTime != "" {
		if created, err := time.Parse(time.RFC3339, u.CreationTime); err == nil {
			user.StartDate = &created
		}
	}

	return user
}

func userStatus(u *admin.User, deleted bool) string {
	switch {
	case deleted:
		return domain.DirectoryStatusDeleted
	case u.Archived:
		return domain.DirectoryStatusArchived
	case u.Suspended:
		return domain.DirectoryStatusSuspended
	default:
		return domain.DirectoryStatusActive
	}
}

// primaryField достает строковое поле из слабо типизированных списков
// Directory API (organizations, phones): берет элемент с primary=true,
// иначе первый непустой.
func primaryField(raw any, field string) string {
	items, ok := raw.([]any)
	if !ok {
		return ""
	}

	value := ""
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		text, _ := entry[field].(string)
		if text == "" {
			continue
		}
		if primary, _ := entry["primary"].(bool); primary {
			return text
		}
		if value == "" {
			value = text
		}
	}

	return value
}
