package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"advisor-api/config"
	"advisor-api/internal/model"
	"advisor-api/internal/repository"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	offeringRepo := repository.NewOfferingRepo(db)
	ruleRepo := repository.NewRuleRepo(db)

	questionnaire := &model.Questionnaire{
		Title: "Cloud Adoption Readiness Assessment",
		Sections: []model.Section{
			{
				Key:      "landscape",
				Title:    "Current Landscape",
				Position: 1,
				Questions: []model.Question{
					{
						Key:      "Q1",
						Text:     "Where do your workloads run today?",
						Type:     model.QuestionTypeSingleChoice,
						Options:  []string{"On-premises", "Single cloud", "Multi-cloud", "Hybrid"},
						Position: 1,
					},
					{
						Key:      "Q2",
						Text:     "Do you have a documented cloud strategy?",
						Type:     model.QuestionTypeYesNo,
						Position: 2,
					},
					{
						Key:       "Q3",
						Text:      "Which areas does your strategy cover?",
						Type:      model.QuestionTypeMultiChoice,
						Options:   []string{"Cost management", "Security", "Data platform", "Application modernization"},
						Position:  3,
						Condition: &model.Condition{QuestionKey: "Q2", Value: "Yes"},
					},
				},
			},
			{
				Key:      "data",
				Title:    "Data & Analytics",
				Position: 2,
				Questions: []model.Question{
					{
						Key:      "Q4",
						Text:     "Do you run analytics workloads on dedicated infrastructure?",
						Type:     model.QuestionTypeYesNo,
						Position: 1,
					},
					{
						Key:       "Q5",
						Text:      "Which data workloads matter most to you?",
						Type:      model.QuestionTypeMultiChoice,
						Options:   []string{"Batch reporting", "Streaming", "Machine learning", "Data warehousing"},
						Position:  2,
						Condition: &model.Condition{QuestionKey: "Q4", Value: "Yes"},
					},
				},
			},
			{
				Key:      "security",
				Title:    "Security & Compliance",
				Position: 3,
				Questions: []model.Question{
					{
						Key:      "Q6",
						Text:     "Are you subject to regulatory compliance requirements?",
						Type:     model.QuestionTypeYesNo,
						Position: 1,
					},
					{
						Key:       "Q7",
						Text:      "Which frameworks apply?",
						Type:      model.QuestionTypeMultiChoice,
						Options:   []string{"GDPR", "HIPAA", "PCI-DSS", "SOC 2"},
						Position:  2,
						Condition: &model.Condition{QuestionKey: "Q6", Value: "Yes"},
					},
				},
			},
		},
	}

	if err := questionnaire.Validate(); err != nil {
		log.Fatalf("Seed questionnaire invalid: %v", err)
	}

	// Rerunning the seed must not duplicate anything
	var qid string
	existing, err := questionnaireRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list questionnaires: %v", err)
	}
	for _, q := range existing {
		if q.Title == questionnaire.Title {
			qid = q.ID
			break
		}
	}
	if qid == "" {
		qid, err = questionnaireRepo.Create(ctx, questionnaire)
		if err != nil {
			log.Fatalf("Failed to seed questionnaire: %v", err)
		}
		log.Printf("Seeded questionnaire %s", qid)
	} else {
		log.Printf("Questionnaire already seeded (%s), skipping", qid)
	}

	offerings := []*model.Offering{
		{
			Key:          "landing-zone",
			Title:        "Cloud Landing Zone Foundation",
			Category:     "Platform",
			SubCategory:  "Foundation",
			Phase:        model.PhaseA,
			Rationale:    "Establishes account structure, networking and guardrails before any workload moves.",
			Inclusions:   "Account topology, IAM baseline, network design, policy guardrails.",
			Deliverables: "Deployed landing zone, architecture decision records.",
			DisplayOrder: 1,
		},
		{
			Key:          "cloud-strategy",
			Title:        "Cloud Strategy Workshop",
			Category:     "Advisory",
			SubCategory:  "Foundation",
			Phase:        model.PhaseA,
			Rationale:    "Aligns stakeholders on target platform, operating model and migration sequencing.",
			Deliverables: "Strategy document, prioritized initiative backlog.",
			DisplayOrder: 2,
		},
		{
			Key:          "data-platform",
			Title:        "Modern Data Platform Build",
			Category:     "Data",
			SubCategory:  "Data",
			Phase:        model.PhaseB,
			Rationale:    "Consolidates analytics workloads onto an elastic lakehouse platform.",
			Inclusions:   "Ingestion pipelines, storage layout, governance catalog.",
			Deliverables: "Production data platform with two onboarded domains.",
			DisplayOrder: 3,
		},
		{
			Key:          "ml-enablement",
			Title:        "ML Enablement Sprint",
			Category:     "Data",
			SubCategory:  "Data",
			Phase:        model.PhaseC,
			Rationale:    "Stands up experiment tracking and a first production model pipeline.",
			DisplayOrder: 4,
		},
		{
			Key:          "security-baseline",
			Title:        "Security Baseline Review",
			Category:     "Security",
			SubCategory:  "Security",
			Phase:        model.PhaseA,
			Rationale:    "Maps current controls against the applicable compliance frameworks.",
			Deliverables: "Gap analysis, remediation roadmap.",
			DisplayOrder: 5,
		},
		{
			Key:          "compliance-automation",
			Title:        "Compliance Automation",
			Category:     "Security",
			SubCategory:  "Security",
			Phase:        model.PhaseB,
			Rationale:    "Turns recurring audit evidence collection into policy-as-code checks.",
			DisplayOrder: 6,
		},
		{
			Key:          "finops",
			Title:        "FinOps Cost Optimization",
			Category:     "Operations",
			SubCategory:  "Operations",
			Rationale:    "Continuous rightsizing and commitment planning across providers.",
			DisplayOrder: 7,
		},
	}
	seeded := 0
	for _, o := range offerings {
		found, err := offeringRepo.GetByKey(ctx, o.Key)
		if err != nil {
			log.Fatalf("Failed to look up offering %s: %v", o.Key, err)
		}
		if found != nil {
			continue
		}
		if err := offeringRepo.Create(ctx, o); err != nil {
			log.Fatalf("Failed to seed offering %s: %v", o.Key, err)
		}
		seeded++
	}
	log.Printf("Seeded %d offerings (%d already present)", seeded, len(offerings)-seeded)

	rules := []*model.DecisionRule{
		{QuestionKey: "Q1", AnswerValue: "On-premises", OfferingKey: "landing-zone", Weight: 5},
		{QuestionKey: "Q1", AnswerValue: "On-premises", OfferingKey: "cloud-strategy", Weight: 4},
		{QuestionKey: "Q1", AnswerValue: "Hybrid", OfferingKey: "landing-zone", Weight: 3},
		{QuestionKey: "Q1", AnswerValue: "Multi-cloud", OfferingKey: "finops", Weight: 4},
		{QuestionKey: "Q2", AnswerValue: "No", OfferingKey: "cloud-strategy", Weight: 5},
		{QuestionKey: "Q3", AnswerValue: "Cost management", OfferingKey: "finops", Weight: 3},
		{QuestionKey: "Q3", AnswerValue: "Security", OfferingKey: "security-baseline", Weight: 2},
		{QuestionKey: "Q3", AnswerValue: "Data platform", OfferingKey: "data-platform", Weight: 2},
		{QuestionKey: "Q4", AnswerValue: "Yes", OfferingKey: "data-platform", Weight: 3},
		{QuestionKey: "Q5", AnswerValue: "Machine learning", OfferingKey: "ml-enablement", Weight: 4},
		{QuestionKey: "Q5", AnswerValue: "Data warehousing", OfferingKey: "data-platform", Weight: 2},
		{QuestionKey: "Q5", AnswerValue: "Streaming", OfferingKey: "data-platform", Weight: 2},
		{QuestionKey: "Q6", AnswerValue: "Yes", OfferingKey: "security-baseline", Weight: 4},
		{QuestionKey: "Q7", AnswerValue: "HIPAA", OfferingKey: "compliance-automation", Weight: 3},
		{QuestionKey: "Q7", AnswerValue: "PCI-DSS", OfferingKey: "compliance-automation", Weight: 3},
		{QuestionKey: "Q7", AnswerValue: "SOC 2", OfferingKey: "compliance-automation", Weight: 2},
	}
	seededRules := 0
	for _, r := range rules {
		exists, err := ruleRepo.Exists(ctx, r.QuestionKey, r.AnswerValue, r.OfferingKey)
		if err != nil {
			log.Fatalf("Failed to look up rule (%s,%s,%s): %v", r.QuestionKey, r.AnswerValue, r.OfferingKey, err)
		}
		if exists {
			continue
		}
		if _, err := ruleRepo.Create(ctx, r); err != nil {
			log.Fatalf("Failed to seed rule (%s,%s,%s): %v", r.QuestionKey, r.AnswerValue, r.OfferingKey, err)
		}
		seededRules++
	}
	log.Printf("Seeded %d decision rules (%d already present)", seededRules, len(rules)-seededRules)
	log.Printf("Done. Questionnaire id: %s", qid)
}
