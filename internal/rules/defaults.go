package rules

import "github.com/sells-group/assessment-cli/internal/model"

// Default returns the built-in table set. The values mirror the v4 marketing
// questionnaire for professional services firms.
func Default() *Rules {
	return &Rules{
		Catalog:         defaultCatalog(),
		Scoring:         defaultScoring(),
		Personas:        defaultPersonas(),
		Recommendations: defaultRecommendations(),
		LeadScoring:     defaultLeadScoring(),
		CTA:             defaultCTA(),
	}
}

func defaultCatalog() Catalog {
	return Catalog{
		Sections: []Section{
			{ID: "context", Title: "Business Context"},
			{ID: "coverage", Title: "KPI Coverage"},
			{ID: "reliability", Title: "Reliability & Latency"},
			{ID: "tooling", Title: "Tooling & Architecture"},
			{ID: "usage", Title: "Usage & Forecasting"},
		},
		KPIs: []string{
			"Billable-utilization %",
			"Average bill / realized rate",
			"Project gross-margin %",
			"Revenue-forecast accuracy",
			"Bench cost (idle hours × loaded rate)",
			"Client satisfaction / NPS",
		},
		KPISentinel: "None of the above",
		IDs: QuestionIDs{
			Coverage:       "A1",
			Confidence:     "B2",
			ReportingSpeed: "B3",
			ManualWork:     "B4",
			QualityIssues:  "B5",
			Tools:          "C6",
			Architecture:   "C7",
			Team:           "C8",
			VisibilityGaps: "C9",
			Owner:          "D10",
			DataUsers:      "D11",
			Forecasting:    "D13",
			CompanySize:    "E2",
			Challenge:      "E15",
			Timeline:       "E16",
			Growth:         "E17",
		},
		RequiredFields: []string{"A1", "B2", "B3", "E15"},
		Questions: []Question{
			{
				ID:      "A1",
				Section: "coverage",
				Text:    "Which performance indicators does your team review at least monthly?",
				Type:    "multi-select",
				Note:    "Select all that apply",
				Options: []string{
					"Billable-utilization %",
					"Average bill / realized rate",
					"Project gross-margin %",
					"Revenue-forecast accuracy",
					"Bench cost (idle hours × loaded rate)",
					"Client satisfaction / NPS",
					"None of the above or I don't know",
				},
			},
			{
				ID:      "B2",
				Section: "reliability",
				Text:    "How confident are you in those numbers?",
				Type:    "slider",
				Min:     0,
				Max:     10,
			},
			{
				ID:      "B3",
				Section: "reliability",
				Text:    "How soon after month-end are your core KPIs ready?",
				Type:    "single-select",
				Options: []string{"Same day", "Within 1 week", "1–2 weeks", "More than 2 weeks / Not sure"},
			},
			{
				ID:      "B4",
				Section: "reliability",
				Text:    "Roughly what share of your KPI data still needs manual fixes every month?",
				Type:    "single-select",
				Options: []string{"Nothing", "Very little", "Around half", "More than half"},
			},
			{
				ID:      "B5",
				Section: "reliability",
				Text:    "Which data-quality issues are you most concerned about?",
				Type:    "multi-select",
				Note:    "Select all that apply",
				Options: []string{"Duplicate records", "Missing fields", "Inconsistent definitions", "Human error", "None - our data is reliable"},
			},
			{
				ID:      "C6",
				Section: "tooling",
				Text:    "Where do you compile or view KPIs today?",
				Type:    "multi-select",
				Note:    "Select all that apply",
				Options: []string{"PSA built-in dashboards", "Spreadsheets", "BI platform (Tableau / Power BI / Looker)", "We don't compile them consistently"},
			},
			{
				ID:      "C7",
				Section: "tooling",
				Text:    "How would you describe your data architecture?",
				Type:    "single-select",
				Options: []string{"Modern cloud warehouse with APIs", "Traditional database plus some integrations", "Multiple disconnected systems", "Mainly spreadsheets", "Unsure"},
			},
			{
				ID:      "C8",
				Section: "tooling",
				Text:    "Do you have an internal data / BI team?",
				Type:    "single-select",
				Options: []string{"Yes – dedicated", "Limited bandwidth", "None"},
			},
			{
				ID:      "C9",
				Section: "tooling",
				Text:    "Which business units have the least visibility into their numbers?",
				Type:    "multi-select",
				Note:    "Select all that apply",
				Options: []string{
					"Sales / Business Development",
					"Delivery / Project Mgmt",
					"Finance / Accounting",
					"Operations / Resource Mgmt",
					"Marketing / Client Success",
					"Leadership / Executive",
					"All units see what they need",
					"No unit has good visibility",
				},
			},
			{
				ID:      "D10",
				Section: "usage",
				Text:    "Who owns KPI definitions and reporting in your firm?",
				Type:    "single-select",
				Options: []string{"Executive team (strategy)", "Finance (P&L focus)", "Operations", "No clear owner"},
			},
			{
				ID:      "D11",
				Section: "usage",
				Text:    "Who relies on data for day-to-day decisions?",
				Type:    "multi-select",
				Note:    "Select all that apply",
				Options: []string{"Board of directors", "C-suite", "Department heads", "Project managers", "Individual contributors", "External stakeholders"},
			},
			{
				ID:      "D13",
				Section: "usage",
				Text:    "Which statement best matches your forecasting ability?",
				Type:    "single-select",
				Options: []string{"We don't forecast", "Manual quarterly forecast in spreadsheets", "Automated monthly forecast in BI tool", "Scenario simulations & what-if analysis"},
			},
			{
				ID:      "E2",
				Section: "context",
				Text:    "What is your company size by number of employees?",
				Type:    "single-select",
				Options: []string{"1-25 employees", "26-100 employees", "101-500 employees", "501-1,000 employees", "1,000+ employees"},
			},
			{
				ID:      "E15",
				Section: "context",
				Text:    "Your biggest operational challenge?",
				Type:    "single-select",
				Options: []string{"Hiring & retention", "Project profitability", "Cost of client acquisition", "Capacity planning & utilization", "Pricing / rate realization", "Cash-flow management"},
			},
			{
				ID:      "E16",
				Section: "context",
				Text:    "When do you plan to improve your KPI reporting?",
				Type:    "single-select",
				Options: []string{"Within 3 months", "3–6 months", "Later / just exploring"},
			},
			{
				ID:      "E17",
				Section: "context",
				Text:    "What is your primary growth strategy?",
				Type:    "single-select",
				Options: []string{"Win new clients", "Grow existing clients", "Launch new service lines", "Acquire other firms"},
			},
		},
	}
}

func defaultScoring() Scoring {
	return Scoring{
		ManualWorkTiers: map[string]int{
			"Nothing":        0,
			"Very little":    1,
			"Around half":    2,
			"More than half": 3,
		},
		ManualPenaltyFactor:  2,
		QualityCleanSentinel: "None - our data is reliable",
		QualityBonus:         2,

		Latency: map[string]int{
			"Same day":                     10,
			"Within 1 week":                8,
			"1–2 weeks":                    5,
			"More than 2 weeks / Not sure": 1,
		},
		LatencyDefault: 1,
		LatencyLabels: map[string]string{
			"Same day":                     "same day",
			"Within 1 week":                "within a week",
			"1–2 weeks":                    "1-2 weeks",
			"More than 2 weeks / Not sure": "more than 2 weeks",
		},
		LatencyLabelDefault: "unknown timeframe",

		Forecast: map[string]int{
			"We don't forecast":                         1,
			"Manual quarterly forecast in spreadsheets": 4,
			"Automated monthly forecast in BI tool":     7,
			"Scenario simulations & what-if analysis":   10,
		},
		ForecastDefault: 1,

		AutomationMatrix: []AutomationRule{
			{
				Name:         "perfect_automation",
				Tools:        []string{"BI platform (Tableau / Power BI / Looker)"},
				Architecture: "Modern cloud warehouse with APIs",
				Team:         "Yes – dedicated",
				Score:        10,
			},
			{
				Name:         "advanced_bi_limited_team",
				Tools:        []string{"BI platform (Tableau / Power BI / Looker)"},
				Architecture: "Modern cloud warehouse with APIs",
				Team:         "Limited bandwidth",
				Score:        8,
			},
			{
				Name:         "traditional_bi",
				Tools:        []string{"BI platform (Tableau / Power BI / Looker)"},
				Architecture: "Traditional database plus some integrations",
				Team:         "Limited bandwidth",
				Score:        5,
			},
			{
				Name:         "traditional_bi_dedicated",
				Tools:        []string{"BI platform (Tableau / Power BI / Looker)"},
				Architecture: "Traditional database plus some integrations",
				Team:         "Yes – dedicated",
				Score:        7,
			},
			{
				Name:         "psa_disconnected",
				Tools:        []string{"PSA built-in dashboards"},
				Architecture: "Multiple disconnected systems",
				Team:         "Limited bandwidth",
				Score:        3,
			},
			{
				Name:         "psa_modern_dedicated",
				Tools:        []string{"PSA built-in dashboards"},
				Architecture: "Modern cloud warehouse with APIs",
				Team:         "Yes – dedicated",
				Score:        6,
			},
			{
				Name:         "basic_spreadsheets",
				Tools:        []string{"Spreadsheets"},
				Architecture: "Mainly spreadsheets",
				Team:         "None",
				Score:        1,
			},
			{
				Name:         "mixed_tools_disconnected",
				Tools:        []string{"PSA built-in dashboards", "Spreadsheets"},
				Architecture: "Multiple disconnected systems",
				Team:         "None",
				Score:        2,
			},
		},
		AutomationWeights: AutomationWeights{
			BIPlatform:    3,
			PSADashboards: 2,
			ModernCloud:   3,
			TraditionalDB: 1,
			DedicatedTeam: 2,
			LimitedTeam:   1,
		},
		AutomationSignals: AutomationSignals{
			BIPlatformOption:    "BI platform (Tableau / Power BI / Looker)",
			PSADashboardsOption: "PSA built-in dashboards",
			ModernCloudMatch:    "Modern cloud warehouse",
			TraditionalDBMatch:  "Traditional database",
			DedicatedTeamOption: "Yes – dedicated",
			LimitedTeamOption:   "Limited bandwidth",
		},
		AutomationBase: 1,

		Governance: Governance{
			Enabled: false,
			OwnerWeights: map[string]int{
				"Executive team (strategy)": 4,
				"Finance (P&L focus)":       3,
				"Operations":                2,
				"No clear owner":            0,
			},
			UserWeights: map[string]int{
				"Board of directors":      1,
				"C-suite":                 2,
				"Department heads":        1,
				"Project managers":        1,
				"Individual contributors": 1,
				"External stakeholders":   1,
			},
			UserWeightCap: 6,
		},

		Weights: TotalWeights{
			Coverage:   1,
			Confidence: 1,
			Latency:    0.7,
			Automation: 1,
			Governance: 0.7,
			Forecast:   1,
		},
	}
}

func defaultPersonas() Personas {
	return Personas{
		Order: []model.Tier{model.TierP0, model.TierP1, model.TierP2, model.TierP3, model.TierP4},
		Thresholds: map[model.Tier]int{
			model.TierP0: 0,
			model.TierP1: 11,
			model.TierP2: 22,
			model.TierP3: 32,
			model.TierP4: 42,
		},
		Labels: map[model.Tier]string{
			model.TierP0: "Ad Hoc / Fire-fighting",
			model.TierP1: "Standardized / Foundational",
			model.TierP2: "Integrated / Insight-driven",
			model.TierP3: "Predictive / Optimized",
			model.TierP4: "Strategic / Value Multiplier",
		},
		Descriptions: map[model.Tier]string{
			model.TierP0: "You're starting your KPI journey. Most reporting happens in spreadsheets with manual data collection. You have minimal system alignment and business unit proccesses vary.",
			model.TierP1: "You track core metrics and have defined KPIs but rely heavily on manual processes. Basic reporting infrastructure is in place but are hindsight-oriented.",
			model.TierP2: "You aggregate data from multiple sources into centralized, trusted reports. Data informs weekly decision-making.",
			model.TierP3: "You build meaningful insights from your data with good automation and business unit alignment. You apply data to forecasting, pricing, inventory, and churn modelling.",
			model.TierP4: "You optimize strategy using advanced analytics, real-time data, and sophisticated forecasting models. Data infrastructure is a differentiator that enables M&A support, GTM agility, and rapid scaling.",
		},
	}
}

func defaultRecommendations() Recommendations {
	return Recommendations{
		Base: map[model.Tier][]string{
			model.TierP0: {
				"Conduct a strategic data roadmap, standardise processes, and define which KPIs matter and how to measure them.",
				"Create a shared glossary so everyone means the same thing by \"margin\" and \"utilization.\"",
				"Start small: Automate billable-utilization and gross-margin feeds to replace manual spreadsheets.",
			},
			model.TierP1: {
				"Centralise reporting: Move from scattered spreadsheets to a single dashboard that updates automatically.",
				"Add forecast accuracy tracking to catch revenue surprises before they hit P&L.",
				"Launch sprint-based implementations that prove value quickly and standardise metric definitions across business units.",
			},
			model.TierP2: {
				"Layer predictive metrics: Add leading indicators like pipeline velocity and resource demand forecasting.",
				"Implement automated alerts when utilization or margin trends outside acceptable ranges.",
				"Implement a scalable data platform (preferably SaaS) focused on high-value business use cases.",
			},
			model.TierP3: {
				"Build scenario planning: Create \"what-if\" models for utilization drops, rate changes, and market shifts.",
				"Add client profitability segmentation to focus growth efforts on highest-value relationships.",
				"Embed analytics in operations, introduce self-service BI, and strengthen data quality management.",
			},
			model.TierP4: {
				"Advanced analytics: Layer machine learning for demand forecasting and optimal resource allocation.",
				"Build competitive benchmarking dashboards using industry data sources.",
				"Adopt managed services to reduce run-rate costs while ensuring platform continuity, and mature DataOps practices to maintain momentum.",
			},
		},
		Placeholders: map[string]Placeholder{
			"manual_work_level": {QuestionID: "B4", Default: "current level"},
		},
		OverridesEnabled: false,
		ChallengeOverrides: map[string]string{
			"Project profitability":           "Implement real-time project margin alerts and weekly profit variance reports to catch overruns early.",
			"Hiring & retention":              "Add utilization forecasting and skills gap analysis to predict hiring needs 6-8 weeks ahead.",
			"Cost of client acquisition":      "Track sales pipeline velocity and client acquisition cost per service line to optimize marketing spend.",
			"Capacity planning & utilization": "Build resource demand forecasting with project pipeline integration for better capacity allocation.",
			"Cash-flow management":            "Connect project milestones to AR aging and cash flow projections for predictable revenue timing.",
		},
		GrowthOverrides: map[string]string{
			"Win new clients":          "Prioritize sales efficiency KPIs: pipeline conversion rates, proposal win rates, and client acquisition cost by channel.",
			"Grow existing clients":    "Focus on client satisfaction and account expansion metrics: NPS trends, upsell rates, and wallet share analysis.",
			"Launch new service lines": "Track innovation metrics: time-to-market for new services, early adoption rates, and service line profitability.",
			"Acquire other firms":      "Build integration KPIs: cultural alignment scores, talent retention rates, and synergy realization tracking.",
		},
	}
}

func defaultLeadScoring() LeadScoring {
	return LeadScoring{
		OwnerModifiers: map[string]int{
			"Executive team (strategy)": 15,
			"Finance (P&L focus)":       10,
			"No clear owner":            -5,
		},
		TimelineModifiers: map[string]int{
			"Within 3 months":        15,
			"Later / just exploring": -5,
		},
		ChallengeModifiers: map[string]int{
			"Project profitability":           10,
			"Cash-flow management":            8,
			"Capacity planning & utilisation": 6,
		},
		GrowthModifiers: map[string]int{
			"Win new clients":     5,
			"Acquire other firms": 5,
		},
		High: PriorityBand{
			Threshold: 75,
			Level:     "HIGH",
			Label:     "Priority Lead - High Intent & Authority",
			Icon:      "🎯",
		},
		Medium: PriorityBand{
			Threshold: 50,
			Level:     "MEDIUM",
			Label:     "Qualified Lead",
			Icon:      "📈",
		},
		Low: PriorityBand{
			Level: "LOW",
			Label: "Information Seeker",
			Icon:  "📋",
		},
		Alerts: AlertRules{
			UrgentTimeline:    "Within 3 months",
			ExecutiveOwner:    "Executive team (strategy)",
			ExecutiveMinScore: 60,
		},
	}
}

func defaultCTA() CTA {
	return CTA{
		DefaultPrimary:   "Download Your KPI Guide",
		DefaultSecondary: "Book 25-min KPI Review",
		ValueProposition: "Get a one-page guide to the 7 KPIs every mature services firm watches, customised for {persona_label}s.",
		ChallengeOverrides: map[string]CTAOverride{
			"Project profitability": {
				ValueProposition: "Download your margin protection playbook with proven KPIs that catch profit leaks before they hit P&L.",
				SecondaryCTA:     "Book Profitability Assessment",
			},
			"Hiring & retention": {
				ValueProposition: "Get your resource planning toolkit with KPIs that predict hiring needs and capacity gaps.",
				SecondaryCTA:     "Book Workforce Planning Review",
			},
			"Cash-flow management": {
				ValueProposition: "Access your cash flow forecasting framework with KPIs that predict revenue timing and AR issues.",
				SecondaryCTA:     "Book Cash Flow Strategy Call",
			},
		},
		UrgentTimeline:     "Within 3 months",
		ExploringTimeline:  "Later / just exploring",
		ExploringSecondary: "Schedule Future Planning Call",
		ExecutiveOwner:     "Executive team (strategy)",
		ExecutiveSwap:      TextSwap{Old: "25-min", New: "45-min Executive"},
		FinanceOwner:       "Finance (P&L focus)",
		FinanceSwap:        TextSwap{Old: "Review", New: "ROI Discussion"},
	}
}
