// Package plan defines subscription plan configuration for the OAB prep
// platform: per-resource quotas, feature switches, and the heavy-user bonus
// session policy knobs.
//
// Plans are static configuration loaded once at startup from a Source
// (in-memory for tests, YAML file for deployments). Quota fields use the
// Unlimited sentinel (-1) to disable a cap entirely.
//
// Basic usage:
//
//	src := plan.NewInMemSource(map[string]plan.Plan{
//	    "gratuito": {
//	        Code:                "gratuito",
//	        Name:                "Gratuito",
//	        SessionsPerDay:      1,
//	        QuestionsPerSession: 20,
//	        QuestionsPerDay:     30,
//	        PiecesPerMonth:      2,
//	        ReportTier:          plan.ReportTierBasic,
//	    },
//	})
//	plans, err := src.Load(ctx)
package plan
