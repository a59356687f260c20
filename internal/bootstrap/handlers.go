package bootstrap

import (
	"context"
	"fmt"
	"time"

	"schemesathi/internal/api"
	"schemesathi/internal/common/auth"
	"schemesathi/internal/common/aws"
	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/config"
	"schemesathi/internal/common/genai"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/recommendation"
	"schemesathi/internal/schemes/catalog"
	"schemesathi/internal/schemes/eligibility"
	"schemesathi/internal/store/application"
	"schemesathi/internal/store/profile"
	"schemesathi/internal/store/reccache"
	listapplications "schemesathi/internal/workers/application/list-applications"
	recordapplication "schemesathi/internal/workers/application/record-application"
	sendapplicationnotification "schemesathi/internal/workers/application/send-application-notification"
	updateapplicationstatus "schemesathi/internal/workers/application/update-application-status"
	getuserprofile "schemesathi/internal/workers/profile/get-user-profile"
	saveuserprofile "schemesathi/internal/workers/profile/save-user-profile"
	recommendschemes "schemesathi/internal/workers/recommendation/recommend-schemes"
	resolveeligibleschemes "schemesathi/internal/workers/recommendation/resolve-eligible-schemes"
	getschemedetails "schemesathi/internal/workers/schemes/get-scheme-details"
	searchschemes "schemesathi/internal/workers/schemes/search-schemes"
	summarizescheme "schemesathi/internal/workers/schemes/summarize-scheme"
	validatesession "schemesathi/internal/workers/session/validate-session"

	"github.com/elastic/go-elasticsearch/v8"
)

// Dependencies are the collaborators the handlers are built from. Any field may be nil except
// the stores; a nil generator disables recommendations and summaries, nil senders disable
// their notification channel, and a nil publisher skips status-change messages.
type Dependencies struct {
	Profiles     profile.Store
	Contacts     profile.ContactStore
	Applications application.Store
	Cache        recommendation.Cache
	Search       *elasticsearch.Client
	Generator    genai.Generator
	Verifier     auth.SessionVerifier
	Email        sendapplicationnotification.EmailSender
	SMS          sendapplicationnotification.SMSSender
	Publisher    updateapplicationstatus.MessagePublisher
}

// Handlers holds one handler per task type.
type Handlers struct {
	Catalog *catalog.Catalog

	ValidateSession        *validatesession.Handler
	SaveUserProfile        *saveuserprofile.Handler
	SaveProfileAPI         *saveuserprofile.Handler // fetches recommendations inline
	GetUserProfile         *getuserprofile.Handler
	RecommendSchemes       *recommendschemes.Handler
	ResolveEligibleSchemes *resolveeligibleschemes.Handler
	GetSchemeDetails       *getschemedetails.Handler
	SearchSchemes          *searchschemes.Handler
	SummarizeScheme        *summarizescheme.Handler
	RecordApplication      *recordapplication.Handler
	ListApplications       *listapplications.Handler
	UpdateStatus           *updateapplicationstatus.Handler
	SendNotification       *sendapplicationnotification.Handler
}

// NewDependencies builds the production dependencies on top of connected backends. Generator
// and AWS failures are logged and leave the feature disabled rather than failing startup.
func NewDependencies(ctx context.Context, cfg *config.Config, b *Backends, publisher updateapplicationstatus.MessagePublisher, log logger.Logger) (*Dependencies, error) {
	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("session verifier: %w", err)
	}

	profiles := profile.NewPostgresStore(b.Postgres.DB)
	deps := &Dependencies{
		Profiles:     profiles,
		Contacts:     profiles,
		Applications: application.NewPostgresStore(b.Postgres.DB, log),
		Cache:        reccache.New(b.Redis.Client, time.Duration(cfg.Recommendations.CacheTTL)*time.Second),
		Search:       b.Elasticsearch.Client,
		Verifier:     verifier,
		Publisher:    publisher,
	}

	if gen, err := genai.New(ctx, *cfg); err != nil {
		log.Warn("genai disabled", map[string]interface{}{"error": err.Error()})
	} else {
		deps.Generator = gen
	}

	n := cfg.Notifications
	if n.Email.Enabled {
		if ses, err := aws.NewSESClient(ctx, n.AWS.Region, n.Email.FromEmail); err != nil {
			log.Warn("email channel disabled", map[string]interface{}{"error": err.Error()})
		} else {
			deps.Email = ses
		}
	}
	if n.SMS.Enabled {
		if sns, err := aws.NewSNSClient(ctx, n.AWS.Region, n.SMS.SenderID); err != nil {
			log.Warn("sms channel disabled", map[string]interface{}{"error": err.Error()})
		} else {
			deps.SMS = sns
		}
	}

	return deps, nil
}

// NewHandlers builds every handler against the bundled catalog.
func NewHandlers(cfg *config.Config, deps *Dependencies, log logger.Logger) (*Handlers, error) {
	cat := catalog.Default()
	matcher := eligibility.NewMatcher(eligibility.DefaultRules())
	if unruled := matcher.Unruled(cat.All()); len(unruled) > 0 {
		log.Warn("schemes without an eligibility rule will never match", map[string]interface{}{
			"schemeIds": unruled,
		})
	}

	var (
		recommender recommendation.Recommender
		summarizer  summarizescheme.Summarizer
	)
	if deps.Generator != nil {
		client := recommendation.NewClient(deps.Generator, cat, recommendation.Options{
			Temperature: cfg.APIs.GenAI.Temperature,
			MaxTokens:   cfg.APIs.GenAI.MaxTokens,
		}, log)
		recommender, summarizer = client, client
	}
	recs := recommendation.NewService(recommender, deps.Cache, log)

	h := &Handlers{Catalog: cat}

	vsCfg := validatesession.LoadConfig()
	vsCfg.Timeout = workerTimeout(cfg, validatesession.TaskType, vsCfg.Timeout)
	h.ValidateSession = validatesession.NewHandler(vsCfg, deps.Verifier, deps.Contacts, log)

	supCfg := saveuserprofile.LoadConfig()
	supCfg.Timeout = workerTimeout(cfg, saveuserprofile.TaskType, supCfg.Timeout)
	supCfg.RecommendTimeout = recommendTimeout(cfg, supCfg.Timeout)
	supCfg.RecommendOnSave = cfg.Recommendations.RecommendOnSave
	h.SaveUserProfile = saveuserprofile.NewHandler(supCfg, deps.Profiles, recs, log)

	apiSaveCfg := *supCfg
	apiSaveCfg.RecommendOnSave = true
	h.SaveProfileAPI = saveuserprofile.NewHandler(&apiSaveCfg, deps.Profiles, recs, log)

	gupCfg := getuserprofile.LoadConfig()
	gupCfg.Timeout = workerTimeout(cfg, getuserprofile.TaskType, gupCfg.Timeout)
	h.GetUserProfile = getuserprofile.NewHandler(gupCfg, deps.Profiles, log)

	rsCfg := recommendschemes.LoadConfig()
	rsCfg.Timeout = workerTimeout(cfg, recommendschemes.TaskType, rsCfg.Timeout)
	h.RecommendSchemes = recommendschemes.NewHandler(rsCfg, deps.Profiles, recs, log)

	resCfg := resolveeligibleschemes.LoadConfig()
	resCfg.Timeout = workerTimeout(cfg, resolveeligibleschemes.TaskType, resCfg.Timeout)
	h.ResolveEligibleSchemes = resolveeligibleschemes.NewHandler(resCfg, cat, matcher, deps.Profiles, recs, log)

	gsdCfg := getschemedetails.LoadConfig()
	gsdCfg.Timeout = workerTimeout(cfg, getschemedetails.TaskType, gsdCfg.Timeout)
	h.GetSchemeDetails = getschemedetails.NewHandler(gsdCfg, cat, log)

	ssCfg := searchschemes.LoadConfig()
	ssCfg.Timeout = workerTimeout(cfg, searchschemes.TaskType, ssCfg.Timeout)
	if cfg.Search.Index != "" {
		ssCfg.Index = cfg.Search.Index
	}
	if cfg.Search.MaxResults > 0 {
		ssCfg.MaxResults = cfg.Search.MaxResults
	}
	h.SearchSchemes = searchschemes.NewHandler(ssCfg, deps.Search, cat, log)

	sumCfg := summarizescheme.LoadConfig()
	sumCfg.Timeout = workerTimeout(cfg, summarizescheme.TaskType, sumCfg.Timeout)
	h.SummarizeScheme = summarizescheme.NewHandler(sumCfg, cat, summarizer, log)

	raCfg := recordapplication.LoadConfig()
	raCfg.Timeout = workerTimeout(cfg, recordapplication.TaskType, raCfg.Timeout)
	h.RecordApplication = recordapplication.NewHandler(raCfg, cat, deps.Applications, log)

	laCfg := listapplications.LoadConfig()
	laCfg.Timeout = workerTimeout(cfg, listapplications.TaskType, laCfg.Timeout)
	h.ListApplications = listapplications.NewHandler(laCfg, deps.Applications, log)

	uasCfg := updateapplicationstatus.LoadConfig()
	uasCfg.Timeout = workerTimeout(cfg, updateapplicationstatus.TaskType, uasCfg.Timeout)
	h.UpdateStatus = updateapplicationstatus.NewHandler(uasCfg, deps.Applications, deps.Publisher, log)

	sanCfg := sendapplicationnotification.LoadConfig()
	sanCfg.Timeout = workerTimeout(cfg, sendapplicationnotification.TaskType, sanCfg.Timeout)
	sanCfg.EmailEnabled = cfg.Notifications.Email.Enabled
	sanCfg.SMSEnabled = cfg.Notifications.SMS.Enabled
	san, err := sendapplicationnotification.NewHandler(sanCfg, deps.Contacts, deps.Applications, deps.Email, deps.SMS, log)
	if err != nil {
		return nil, err
	}
	h.SendNotification = san

	return h, nil
}

// workerTimeout uses the configured timeout for listed workers and def otherwise.
func workerTimeout(cfg *config.Config, taskType string, def time.Duration) time.Duration {
	if w, ok := cfg.Workers[taskType]; ok && w.Timeout > 0 {
		return config.GetDuration(w.Timeout)
	}
	return def
}

// recommendTimeout is the genai timeout, kept below the job timeout so an inline fetch always
// leaves time to report the save.
func recommendTimeout(cfg *config.Config, jobTimeout time.Duration) time.Duration {
	d := time.Duration(cfg.APIs.GenAI.Timeout) * time.Millisecond
	if limit := jobTimeout * 2 / 3; d <= 0 || d > limit {
		d = limit
	}
	return d
}

// Register starts a job worker for every enabled task type and returns how many were opened.
func (h *Handlers) Register(pool *camunda.Pool, cfg *config.Config) int {
	workers := []struct {
		taskType string
		handle   camunda.HandlerFunc
	}{
		{validatesession.TaskType, h.ValidateSession.Handle},
		{saveuserprofile.TaskType, h.SaveUserProfile.Handle},
		{getuserprofile.TaskType, h.GetUserProfile.Handle},
		{recommendschemes.TaskType, h.RecommendSchemes.Handle},
		{resolveeligibleschemes.TaskType, h.ResolveEligibleSchemes.Handle},
		{getschemedetails.TaskType, h.GetSchemeDetails.Handle},
		{searchschemes.TaskType, h.SearchSchemes.Handle},
		{summarizescheme.TaskType, h.SummarizeScheme.Handle},
		{recordapplication.TaskType, h.RecordApplication.Handle},
		{listapplications.TaskType, h.ListApplications.Handle},
		{updateapplicationstatus.TaskType, h.UpdateStatus.Handle},
		{sendapplicationnotification.TaskType, h.SendNotification.Handle},
	}

	started := 0
	for _, w := range workers {
		if pool.Start(w.taskType, config.GetWorkerConfig(cfg, w.taskType), w.handle) {
			started++
		}
	}
	return started
}

// API returns the subset of handlers served over HTTP.
func (h *Handlers) API() api.Handlers {
	return api.Handlers{
		Session:           h.ValidateSession,
		GetProfile:        h.GetUserProfile,
		SaveProfile:       h.SaveProfileAPI,
		EligibleSchemes:   h.ResolveEligibleSchemes,
		SchemeDetails:     h.GetSchemeDetails,
		SearchSchemes:     h.SearchSchemes,
		SummarizeScheme:   h.SummarizeScheme,
		RecordApplication: h.RecordApplication,
		ListApplications:  h.ListApplications,
		UpdateStatus:      h.UpdateStatus,
	}
}
