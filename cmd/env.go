package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"

	"github.com/sells-group/assessment-cli/internal/delivery"
	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/rules"
	"github.com/sells-group/assessment-cli/internal/store"
	notionpkg "github.com/sells-group/assessment-cli/pkg/notion"
	sfpkg "github.com/sells-group/assessment-cli/pkg/salesforce"
)

// loadRules returns the built-in scoring tables, overlaid with the YAML
// file from config when one is set.
func loadRules() (*rules.Rules, error) {
	if cfg.Rules.Path == "" {
		r := rules.Default()
		if err := rules.Validate(r); err != nil {
			return nil, err
		}
		return r, nil
	}
	return rules.LoadFile(cfg.Rules.Path)
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "assessments.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initSalesforce() (sfpkg.Client, error) {
	if cfg.Salesforce.ClientID == "" {
		return nil, eris.New("salesforce client ID is required (ASSESS_SALESFORCE_CLIENT_ID)")
	}

	pemData, err := os.ReadFile(cfg.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Salesforce.LoginURL,
		Username:       cfg.Salesforce.Username,
		ConsumerKey:    cfg.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(sf), nil
}

func initNotion() (notionpkg.Client, error) {
	if cfg.Notion.Token == "" {
		return nil, eris.New("notion token is required (ASSESS_NOTION_TOKEN)")
	}
	return notionpkg.NewClient(cfg.Notion.Token), nil
}

// initDispatcher wires every configured delivery sink. Sinks whose
// credentials are absent are simply skipped, so a laptop run with no CRM
// secrets still scores and saves locally.
func initDispatcher() (*delivery.Dispatcher, error) {
	var sinks []delivery.Sink

	if cfg.Salesforce.ClientID != "" {
		sf, err := initSalesforce()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, delivery.NewSalesforceSink(sf, cfg.Salesforce.SObject))
	}

	if cfg.Notion.Token != "" && cfg.Notion.LeadDB != "" {
		nc, err := initNotion()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, delivery.NewNotionSink(nc, cfg.Notion.LeadDB))
	}

	return delivery.NewDispatcher(cfg.Delivery.MinLeadScore, sinks...), nil
}

// readAnswers loads one answers JSON object from path ("-" means stdin).
func readAnswers(path string) (model.Answers, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "read answers file %s", path)
	}

	var answers model.Answers
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, eris.Wrapf(err, "parse answers file %s", path)
	}
	return answers, nil
}
