package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cleanmate-lab/admin-backend/config"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/hasura/go-graphql-client"
)

// SubgraphClient reads the indexer. All list operations accept first/skip
// load-more pagination; filters map to the subgraph's where argument.
type SubgraphClient interface {
	GetStreakSubmissions(ctx context.Context, filter StreakSubmissionFilter) ([]model.StreakSubmission, bool, error)
	GetStreakSubmission(ctx context.Context, id string) (*model.StreakSubmission, error)
	GetCleanups(ctx context.Context, filter CleanupFilter) ([]model.Cleanup, bool, error)
	GetCleanup(ctx context.Context, id string) (*model.Cleanup, error)
	GetCleanupUpdates(ctx context.Context, cleanupID string, first, skip int) ([]model.CleanupUpdate, bool, error)
	GetUsers(ctx context.Context, search string, first, skip int) ([]model.User, bool, error)
	GetUser(ctx context.Context, address string) (*model.User, error)
}

type StreakSubmissionFilter struct {
	Status *int
	User   string
	First  int
	Skip   int
}

type CleanupFilter struct {
	Status    *int
	Organizer string
	First     int
	Skip      int
}

type subgraphClient struct {
	client   *graphql.Client
	pageSize int
}

func NewSubgraphClient(cfg config.SubgraphConfigs) *subgraphClient {
	return &subgraphClient{
		client:   graphql.NewClient(cfg.URL, http.DefaultClient),
		pageSize: cfg.PageSize,
	}
}

// flexString decodes either a JSON string or a bare number into a decimal
// string, so bigint fields never round-trip through float64.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}

		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}

	*s = flexString(n.String())
	return nil
}

type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	v, err := strconv.Atoi(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}

	*i = flexInt(v)
	return nil
}

type rawStreakSubmission struct {
	ID              flexString `json:"id"`
	User            flexString `json:"user"`
	Metadata        flexString `json:"metadata"`
	Status          flexInt    `json:"status"`
	RewardAmount    flexString `json:"rewardAmount"`
	RejectionReason flexString `json:"rejectionReason"`
	SubmittedAt     flexString `json:"submittedAt"`
	ReviewedAt      flexString `json:"reviewedAt"`
}

func (r rawStreakSubmission) toModel() model.StreakSubmission {
	return model.StreakSubmission{
		ID:              string(r.ID),
		User:            strings.ToLower(string(r.User)),
		Metadata:        string(r.Metadata),
		Status:          int(r.Status),
		RewardAmount:    string(r.RewardAmount),
		RejectionReason: string(r.RejectionReason),
		SubmittedAt:     string(r.SubmittedAt),
		ReviewedAt:      string(r.ReviewedAt),
	}
}

type rawCleanup struct {
	ID               flexString `json:"id"`
	Organizer        flexString `json:"organizer"`
	Metadata         flexString `json:"metadata"`
	Status           flexInt    `json:"status"`
	ParticipantCount flexString `json:"participantCount"`
	ScheduledAt      flexString `json:"scheduledAt"`
}

func (r rawCleanup) toModel() model.Cleanup {
	return model.Cleanup{
		ID:               string(r.ID),
		Organizer:        strings.ToLower(string(r.Organizer)),
		Metadata:         string(r.Metadata),
		Status:           int(r.Status),
		ParticipantCount: string(r.ParticipantCount),
		ScheduledAt:      string(r.ScheduledAt),
	}
}

type rawCleanupUpdate struct {
	ID        flexString `json:"id"`
	Cleanup   flexString `json:"cleanup"`
	Submitter flexString `json:"submitter"`
	Metadata  flexString `json:"metadata"`
	Timestamp flexString `json:"timestamp"`
}

func (r rawCleanupUpdate) toModel() model.CleanupUpdate {
	return model.CleanupUpdate{
		ID:        string(r.ID),
		CleanupID: string(r.Cleanup),
		Submitter: strings.ToLower(string(r.Submitter)),
		Metadata:  string(r.Metadata),
		Timestamp: string(r.Timestamp),
	}
}

type rawUser struct {
	ID           flexString `json:"id"`
	ReferralCode flexString `json:"referralCode"`
	StreakCount  flexString `json:"streakCount"`
	TotalRewards flexString `json:"totalRewards"`
	JoinedAt     flexString `json:"joinedAt"`
}

func (r rawUser) toModel() model.User {
	return model.User{
		Address:      strings.ToLower(string(r.ID)),
		ReferralCode: string(r.ReferralCode),
		StreakCount:  string(r.StreakCount),
		TotalRewards: string(r.TotalRewards),
		JoinedAt:     string(r.JoinedAt),
	}
}

const streakSubmissionFields = `id user metadata status rewardAmount rejectionReason submittedAt reviewedAt`

const streakSubmissionsQuery = `query ($where: StreakSubmission_filter, $first: Int!, $skip: Int!) {
  streakSubmissions(where: $where, first: $first, skip: $skip, orderBy: submittedAt, orderDirection: desc) {
    ` + streakSubmissionFields + `
  }
}`

const streakSubmissionQuery = `query ($id: ID!) {
  streakSubmission(id: $id) {
    ` + streakSubmissionFields + `
  }
}`

const cleanupFields = `id organizer metadata status participantCount scheduledAt`

const cleanupsQuery = `query ($where: Cleanup_filter, $first: Int!, $skip: Int!) {
  cleanups(where: $where, first: $first, skip: $skip, orderBy: scheduledAt, orderDirection: desc) {
    ` + cleanupFields + `
  }
}`

const cleanupQuery = `query ($id: ID!) {
  cleanup(id: $id) {
    ` + cleanupFields + `
  }
}`

const cleanupUpdatesQuery = `query ($where: CleanupUpdate_filter, $first: Int!, $skip: Int!) {
  cleanupUpdates(where: $where, first: $first, skip: $skip, orderBy: timestamp, orderDirection: desc) {
    id cleanup submitter metadata timestamp
  }
}`

const usersQuery = `query ($where: User_filter, $first: Int!, $skip: Int!) {
  users(where: $where, first: $first, skip: $skip, orderBy: joinedAt, orderDirection: desc) {
    id referralCode streakCount totalRewards joinedAt
  }
}`

const userQuery = `query ($id: ID!) {
  user(id: $id) {
    id referralCode streakCount totalRewards joinedAt
  }
}`

func (c *subgraphClient) GetStreakSubmissions(
	ctx context.Context, filter StreakSubmissionFilter,
) ([]model.StreakSubmission, bool, error) {
	where := map[string]any{}
	if filter.Status != nil {
		where["status"] = *filter.Status
	}
	if filter.User != "" {
		where["user"] = strings.ToLower(filter.User)
	}

	return fetchWindow(ctx, c.pageSize, func(ctx context.Context, first, skip int) ([]model.StreakSubmission, error) {
		var result struct {
			StreakSubmissions []rawStreakSubmission `json:"streakSubmissions"`
		}
		err := c.execList(ctx, streakSubmissionsQuery, where, first, skip, &result)
		if err != nil {
			return nil, err
		}

		return convertAll(result.StreakSubmissions, rawStreakSubmission.toModel), nil
	}, filter.First, filter.Skip)
}

func (c *subgraphClient) GetStreakSubmission(
	ctx context.Context, id string,
) (*model.StreakSubmission, error) {
	var result struct {
		StreakSubmission *rawStreakSubmission `json:"streakSubmission"`
	}
	if err := c.execByID(ctx, streakSubmissionQuery, id, &result); err != nil {
		return nil, err
	}

	if result.StreakSubmission == nil {
		return nil, ErrNotFound
	}

	submission := result.StreakSubmission.toModel()
	return &submission, nil
}

func (c *subgraphClient) GetCleanups(
	ctx context.Context, filter CleanupFilter,
) ([]model.Cleanup, bool, error) {
	where := map[string]any{}
	if filter.Status != nil {
		where["status"] = *filter.Status
	}
	if filter.Organizer != "" {
		where["organizer"] = strings.ToLower(filter.Organizer)
	}

	return fetchWindow(ctx, c.pageSize, func(ctx context.Context, first, skip int) ([]model.Cleanup, error) {
		var result struct {
			Cleanups []rawCleanup `json:"cleanups"`
		}
		err := c.execList(ctx, cleanupsQuery, where, first, skip, &result)
		if err != nil {
			return nil, err
		}

		return convertAll(result.Cleanups, rawCleanup.toModel), nil
	}, filter.First, filter.Skip)
}

func (c *subgraphClient) GetCleanup(ctx context.Context, id string) (*model.Cleanup, error) {
	var result struct {
		Cleanup *rawCleanup `json:"cleanup"`
	}
	if err := c.execByID(ctx, cleanupQuery, id, &result); err != nil {
		return nil, err
	}

	if result.Cleanup == nil {
		return nil, ErrNotFound
	}

	cleanup := result.Cleanup.toModel()
	return &cleanup, nil
}

func (c *subgraphClient) GetCleanupUpdates(
	ctx context.Context, cleanupID string, first, skip int,
) ([]model.CleanupUpdate, bool, error) {
	where := map[string]any{"cleanup": cleanupID}

	return fetchWindow(ctx, c.pageSize, func(ctx context.Context, first, skip int) ([]model.CleanupUpdate, error) {
		var result struct {
			CleanupUpdates []rawCleanupUpdate `json:"cleanupUpdates"`
		}
		err := c.execList(ctx, cleanupUpdatesQuery, where, first, skip, &result)
		if err != nil {
			return nil, err
		}

		return convertAll(result.CleanupUpdates, rawCleanupUpdate.toModel), nil
	}, first, skip)
}

func (c *subgraphClient) GetUsers(
	ctx context.Context, search string, first, skip int,
) ([]model.User, bool, error) {
	where := map[string]any{}
	if search != "" {
		where["id_contains"] = strings.ToLower(search)
	}

	return fetchWindow(ctx, c.pageSize, func(ctx context.Context, first, skip int) ([]model.User, error) {
		var result struct {
			Users []rawUser `json:"users"`
		}
		err := c.execList(ctx, usersQuery, where, first, skip, &result)
		if err != nil {
			return nil, err
		}

		return convertAll(result.Users, rawUser.toModel), nil
	}, first, skip)
}

func (c *subgraphClient) GetUser(ctx context.Context, address string) (*model.User, error) {
	var result struct {
		User *rawUser `json:"user"`
	}
	if err := c.execByID(ctx, userQuery, strings.ToLower(address), &result); err != nil {
		return nil, err
	}

	if result.User == nil {
		return nil, ErrNotFound
	}

	user := result.User.toModel()
	return &user, nil
}

func (c *subgraphClient) execList(
	ctx context.Context, query string, where map[string]any, first, skip int, result any,
) error {
	raw, err := c.client.ExecRaw(ctx, query, map[string]any{
		"where": where,
		"first": first,
		"skip":  skip,
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, result)
}

func (c *subgraphClient) execByID(ctx context.Context, query, id string, result any) error {
	raw, err := c.client.ExecRaw(ctx, query, map[string]any{"id": id})
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, result)
}

func convertAll[R any, M any](raws []R, convert func(R) M) []M {
	result := make([]M, 0, len(raws))
	for _, raw := range raws {
		result = append(result, convert(raw))
	}

	return result
}
