package service

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/domain"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
	"github.com/aussiebroadwan/tunnelhub/pkg/relay"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

// defaultFetchConcurrency caps simultaneous relay API calls.
const defaultFetchConcurrency = 8

// TunnelLister fetches the tunnels visible to one API token.
type TunnelLister interface {
	ListTunnels(ctx context.Context, token, apiURL string) ([]relay.Tunnel, error)
}

// TunnelService aggregates tunnels across every configured account.
type TunnelService struct {
	Users       *UserDirectory
	Relay       TunnelLister
	Names       store.Names
	Logger      *slog.Logger
	Concurrency int
	Now         func() time.Time
}

// TunnelList is the aggregated view returned by List.
type TunnelList struct {
	Tunnels      []domain.Tunnel
	FilteredUser string
	Timestamp    time.Time
}

type fetchJob struct {
	user   domain.UserConfig
	token  string
	apiURL string
}

// List fetches tunnels for every account, or only for userID when it names a
// configured user. An unknown userID falls back to all users, matching the
// dashboard's behaviour. Accounts whose fetch fails contribute no tunnels.
// The result preserves configured user and token order.
func (s *TunnelService) List(ctx context.Context, userID string) (TunnelList, error) {
	log := slogx.FromContext(ctx)

	users := s.Users.All()
	if userID != "" {
		if u, ok := s.Users.Get(userID); ok {
			users = []domain.UserConfig{u}
		}
	}

	var jobs []fetchJob
	for _, u := range users {
		for i, token := range u.Tokens {
			jobs = append(jobs, fetchJob{user: u, token: token, apiURL: u.APIURL(i)})
		}
	}

	results := make([][]relay.Tunnel, len(jobs))

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			tunnels, err := s.Relay.ListTunnels(gctx, job.token, job.apiURL)
			if err != nil {
				log.Warn("failed to fetch tunnels",
					"user_id", job.user.ID,
					"token", cryptox.FingerprintToken(job.token),
					"api_url", job.apiURL,
					"error", err,
				)
				return nil
			}
			results[i] = tunnels
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return TunnelList{}, err
	}

	var ids []string
	for _, r := range results {
		for _, t := range r {
			ids = append(ids, t.ID)
		}
	}

	names := map[string]string{}
	if s.Names != nil && len(ids) > 0 {
		var err error
		if names, err = s.Names.GetNames(ctx, ids); err != nil {
			log.Error("failed to load custom names", "error", err)
			names = map[string]string{}
		}
	}

	out := make([]domain.Tunnel, 0, len(ids))
	for i, r := range results {
		job := jobs[i]
		for _, t := range r {
			tunnel := domain.Tunnel{
				ID:              t.ID,
				PublicURL:       t.PublicURL,
				Proto:           t.Proto,
				Region:          t.Region,
				TunnelSessionID: t.TunnelSessionID,
				ForwardsTo:      t.ForwardsTo,
				CreatedAt:       t.StartedAt,
				Metadata:        t.Metadata,
				UserID:          job.user.ID,
				UserName:        job.user.Name,
				Status:          domain.TunnelOnline,
			}
			if name, ok := names[t.ID]; ok {
				tunnel.CustomName = &name
			}
			out = append(out, tunnel)
		}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	return TunnelList{Tunnels: out, FilteredUser: userID, Timestamp: now()}, nil
}

// SetName validates and stores a custom name for a tunnel, returning the
// stored (trimmed) name.
func (s *TunnelService) SetName(ctx context.Context, tunnelID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > domain.MaxCustomNameLength {
		return "", ErrInvalidName
	}
	if tunnelID == "" {
		return "", store.ErrInvalidInput
	}

	if err := s.Names.SetName(ctx, tunnelID, name); err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("tunnel renamed", "tunnel_id", tunnelID)
	return name, nil
}

// ClearName removes a tunnel's custom name. Clearing an unnamed tunnel is
// not an error.
func (s *TunnelService) ClearName(ctx context.Context, tunnelID string) error {
	if tunnelID == "" {
		return store.ErrInvalidInput
	}
	if err := s.Names.DeleteName(ctx, tunnelID); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("tunnel name cleared", "tunnel_id", tunnelID)
	return nil
}
