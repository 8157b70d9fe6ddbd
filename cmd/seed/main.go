// Command seed loads demo data through the data-access layer so that every
// record goes through the same validation, stamping and audit logging as a
// live request.
package main

import (
	"context"
	"log"
	"time"

	"github.com/taskflow-hq/taskflow-backend/config"
	"github.com/taskflow-hq/taskflow-backend/internal/activity"
	"github.com/taskflow-hq/taskflow-backend/internal/bootstrap"
	"github.com/taskflow-hq/taskflow-backend/internal/domain"
	"github.com/taskflow-hq/taskflow-backend/internal/issues"
	"github.com/taskflow-hq/taskflow-backend/internal/projects"
	"github.com/taskflow-hq/taskflow-backend/internal/store"
	"github.com/taskflow-hq/taskflow-backend/internal/tasks"
)

type seedUser struct {
	uid         string
	email       string
	displayName string
	role        domain.Role
}

var seedUsers = []seedUser{
	{"seed-admin", "admin@taskflow.dev", "Avery Admin", domain.RoleAdmin},
	{"seed-manager", "manager@taskflow.dev", "Morgan Manager", domain.RoleManager},
	{"seed-member-1", "sam@taskflow.dev", "Sam Carter", domain.RoleMember},
	{"seed-member-2", "dana@taskflow.dev", "Dana Reyes", domain.RoleMember},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	var st store.Store
	if cfg.Store.Backend == "memory" {
		log.Fatal("seeding the memory backend is pointless: data is gone when the process exits")
	}
	fb, err := bootstrap.OpenFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fb.Close()
	st = store.NewFirestore(fb.Firestore)

	if err := run(ctx, st); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("[info] seed complete")
}

func run(ctx context.Context, st store.Store) error {
	for _, u := range seedUsers {
		err := st.Put(ctx, store.Users, u.uid, map[string]any{
			"email":       u.email,
			"displayName": u.displayName,
			"role":        string(u.role),
			"createdAt":   domain.FormatTime(time.Now()),
		})
		if err != nil {
			return err
		}
		log.Printf("[info] user %s (%s)", u.displayName, u.role)
	}

	audit := activity.NewLogger(st)
	projectSvc := projects.NewService(st, audit)
	taskSvc := tasks.NewService(st, audit)
	issueSvc := issues.NewService(st, audit)

	manager := domain.Principal{ID: "seed-manager", Role: domain.RoleManager}

	projectID, err := projectSvc.Create(ctx, manager,
		"Website Relaunch",
		"Marketing site rebuild with the new design system",
		[]string{"seed-member-1", "seed-member-2"},
	)
	if err != nil {
		return err
	}
	log.Printf("[info] project %s", projectID)

	demoTasks := []tasks.CreateInput{
		{ProjectID: projectID, Title: "Set up CI pipeline", AssignedTo: "seed-member-1", Priority: domain.PriorityHigh, Tags: []string{"infra"}},
		{ProjectID: projectID, Title: "Design landing page", AssignedTo: "seed-member-2", Priority: domain.PriorityMedium, Tags: []string{"design"}},
		{ProjectID: projectID, Title: "Write launch announcement", AssignedTo: "seed-member-1", Priority: domain.PriorityLow},
	}
	taskIDs := make([]string, 0, len(demoTasks))
	for _, in := range demoTasks {
		id, err := taskSvc.Create(ctx, manager, in)
		if err != nil {
			return err
		}
		taskIDs = append(taskIDs, id)
		log.Printf("[info] task %s (%s)", in.Title, id)
	}

	// Walk the first task through the board so startedAt/completedAt get
	// stamped the same way live traffic stamps them.
	for _, status := range []string{domain.TaskInProgress, domain.TaskReview, domain.TaskDone} {
		if err := taskSvc.UpdateStatus(ctx, manager, taskIDs[0], status); err != nil {
			return err
		}
	}

	member := domain.Principal{ID: "seed-member-2", Role: domain.RoleMember}
	issueID, err := issueSvc.Create(ctx, member, issues.CreateInput{
		ProjectID:   projectID,
		TaskID:      taskIDs[1],
		Title:       "Hero image overflows on mobile",
		Severity:    domain.SeverityHigh,
		AssignedTo:  "seed-member-2",
		Description: "Viewport narrower than 380px clips the hero artwork",
	})
	if err != nil {
		return err
	}
	log.Printf("[info] issue %s", issueID)

	return nil
}
