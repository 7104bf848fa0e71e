package attendance

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
)

type (
	// Repository persists whole rosters.
	Repository interface {
		SaveRoster(ctx context.Context, roster *Roster) error
		// LoadRoster resets `roster` then fills it from storage.
		LoadRoster(ctx context.Context, roster *Roster) error
	}

	Service struct {
		repo Repository
		log  core.Logger
	}
)

// RecordEntry contains the counts entered for one subject.
type RecordEntry struct {
	SubjectNumber int `field:"subject" validate:"gt=0"`
	Attended      int `field:"attended" validate:"gte=0"`
	Missed        int `field:"missed" validate:"gte=0"`
}

// StudentEntry contains information needed to register a Student.
type StudentEntry struct {
	Name    string        `field:"name" validate:"required,nocomma,notsep"`
	Records []RecordEntry `field:"records" validate:"dive"`
}

func (ns *StudentEntry) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.ValidateStruct(ns)
}

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Register validates `ns` and appends the resulting Student to `roster`.
func (svc *Service) Register(roster *Roster, ns StudentEntry) (*Student, error) {
	if err := ns.Validate(); err != nil {
		return nil, err
	}
	student := NewStudent(ns.Name)
	for _, nr := range ns.Records {
		rec := NewRecord(nr.SubjectNumber)
		if err := rec.SetAttendance(nr.Attended, nr.Missed); err != nil {
			return nil, err
		}
		student.AddRecord(rec)
	}
	roster.AddStudent(student)
	svc.log.Debug("student registered", map[string]interface{}{"name": student.Name, "subjects": len(student.Records)})
	return student, nil
}

func (svc *Service) Save(ctx context.Context, roster *Roster) error {
	if err := svc.repo.SaveRoster(ctx, roster); err != nil {
		return errors.Wrap(err, "saving roster")
	}
	svc.log.Debug("roster saved", map[string]interface{}{"students": roster.Len()})
	return nil
}

func (svc *Service) Load(ctx context.Context) (*Roster, error) {
	roster := NewRoster()
	if err := svc.repo.LoadRoster(ctx, roster); err != nil {
		return nil, errors.Wrap(err, "loading roster")
	}
	svc.log.Debug("roster loaded", map[string]interface{}{"students": roster.Len()})
	return roster, nil
}

// Lookup loads the persisted roster and returns the first student named `name`.
// The loaded roster is returned even when the student is not found.
func (svc *Service) Lookup(ctx context.Context, name string) (*Student, *Roster, error) {
	roster, err := svc.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	student, err := roster.FindByName(name)
	if err != nil {
		return nil, roster, err
	}
	return student, roster, nil
}
