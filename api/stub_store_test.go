package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/devtrack/backend/database"
	"github.com/devtrack/backend/models"
)

// =============================================================================
// In-memory store
// =============================================================================

// memStore backs the stub repositories with maps and mimics the schema's
// cascades and unique constraints closely enough for handler tests.
type memStore struct {
	mu           sync.Mutex
	nextID       int64
	developers   map[int64]models.Developer
	infos        map[int64]models.DeveloperInfo // keyed by developer id
	projects     map[int64]models.Project
	technologies []models.Technology
	associations []models.ProjectTechnology
	err          error // If set, all operations return this error
	pingErr      error
}

func newMemStore() *memStore {
	s := &memStore{
		developers: make(map[int64]models.Developer),
		infos:      make(map[int64]models.DeveloperInfo),
		projects:   make(map[int64]models.Project),
	}
	for i, name := range models.SupportedTechnologies {
		s.technologies = append(s.technologies, models.Technology{ID: int64(i + 1), Name: name})
	}
	return s
}

func (s *memStore) repositories() Repositories {
	return Repositories{
		Developers:          stubDevelopers{s},
		DeveloperInfos:      stubDeveloperInfos{s},
		Projects:            stubProjects{s},
		Technologies:        stubTechnologies{s},
		ProjectTechnologies: stubProjectTechnologies{s},
		Health:              stubPinger{s},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) technologyName(id int64) string {
	for _, t := range s.technologies {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}

// seedDeveloper inserts a developer directly, bypassing the HTTP layer.
func (s *memStore) seedDeveloper(name, email string) models.Developer {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := models.Developer{ID: s.id(), Name: name, Email: email}
	s.developers[d.ID] = d
	return d
}

func (s *memStore) seedProject(developerID int64, name string) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.Project{
		ID:            s.id(),
		Name:          name,
		Description:   "seeded",
		EstimatedTime: "2 weeks",
		Repository:    "https://example.com/" + name,
		StartDate:     models.NewDate(2024, time.January, 10),
		DeveloperID:   developerID,
	}
	s.projects[p.ID] = p
	return p
}

type stubDevelopers struct{ *memStore }

func (s stubDevelopers) FindAll(ctx context.Context) ([]models.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	result := []models.Developer{}
	for _, d := range s.developers {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s stubDevelopers) FindByID(ctx context.Context, id int64) (*models.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	d, ok := s.developers[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s stubDevelopers) FindByEmail(ctx context.Context, email string) (*models.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, d := range s.developers {
		if d.Email == email {
			return &d, nil
		}
	}
	return nil, nil
}

func (s stubDevelopers) FindWithInfo(ctx context.Context, id int64) (*models.DeveloperWithInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	d, ok := s.developers[id]
	if !ok {
		return nil, nil
	}
	row := models.DeveloperWithInfo{DeveloperID: d.ID, DeveloperName: d.Name, DeveloperEmail: d.Email}
	if info, ok := s.infos[id]; ok {
		preferredOS := info.PreferredOS
		row.DeveloperInfoDeveloperSince = info.DeveloperSince
		row.DeveloperInfoPreferredOS = &preferredOS
	}
	return &row, nil
}

func (s stubDevelopers) Add(ctx context.Context, developer *models.Developer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	developer.ID = s.id()
	s.developers[developer.ID] = *developer
	return nil
}

func (s stubDevelopers) Update(ctx context.Context, id int64, changes database.Changes) (*models.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	d, ok := s.developers[id]
	if !ok {
		return nil, nil
	}
	if name, ok := changes.String("name"); ok {
		d.Name = name
	}
	if email, ok := changes.String("email"); ok {
		d.Email = email
	}
	s.developers[id] = d
	return &d, nil
}

func (s stubDevelopers) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.developers, id)
	delete(s.infos, id)
	for projectID, p := range s.projects {
		if p.DeveloperID == id {
			s.deleteProject(projectID)
		}
	}
	return nil
}

type stubDeveloperInfos struct{ *memStore }

func (s stubDeveloperInfos) FindByDeveloperID(ctx context.Context, developerID int64) (*models.DeveloperInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	info, ok := s.infos[developerID]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

func (s stubDeveloperInfos) Add(ctx context.Context, info *models.DeveloperInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	info.ID = s.id()
	s.infos[info.DeveloperID] = *info
	return nil
}

type stubProjects struct{ *memStore }

func (s stubProjects) FindAll(ctx context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	result := []models.Project{}
	for _, p := range s.projects {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s stubProjects) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s stubProjects) FindWithTechnologies(ctx context.Context, id int64) ([]models.ProjectWithTechnology, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.projects[id]
	if !ok {
		return []models.ProjectWithTechnology{}, nil
	}

	var rows []models.ProjectWithTechnology
	for _, a := range s.associations {
		if a.ProjectID == id {
			rows = append(rows, s.joinRow(p, &a))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, s.joinRow(p, nil))
	}
	return rows, nil
}

func (s stubProjects) FindWithTechnology(ctx context.Context, projectID, technologyID int64) (*models.ProjectWithTechnology, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.projects[projectID]
	if !ok {
		return nil, nil
	}
	for _, a := range s.associations {
		if a.ProjectID == projectID && a.TechnologyID == technologyID {
			row := s.joinRow(p, &a)
			return &row, nil
		}
	}
	return nil, nil
}

func (s *memStore) joinRow(p models.Project, a *models.ProjectTechnology) models.ProjectWithTechnology {
	row := models.ProjectWithTechnology{
		ProjectID:            p.ID,
		ProjectName:          p.Name,
		ProjectDescription:   p.Description,
		ProjectEstimatedTime: p.EstimatedTime,
		ProjectRepository:    p.Repository,
		ProjectStartDate:     p.StartDate,
		ProjectEndDate:       p.EndDate,
		ProjectDeveloperID:   p.DeveloperID,
	}
	if a != nil {
		technologyID := a.TechnologyID
		name := s.technologyName(technologyID)
		row.TechnologyID = &technologyID
		row.TechnologyName = &name
	}
	return row
}

func (s stubProjects) Add(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	project.ID = s.id()
	s.projects[project.ID] = *project
	return nil
}

func (s stubProjects) Update(ctx context.Context, id int64, changes database.Changes) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	for _, key := range changes.Keys() {
		value, _ := changes.Value(key)
		switch key {
		case "name":
			p.Name = value.(string)
		case "description":
			p.Description = value.(string)
		case "estimatedTime":
			p.EstimatedTime = value.(string)
		case "repository":
			p.Repository = value.(string)
		case "startDate":
			p.StartDate = value.(models.Date)
		case "endDate":
			p.EndDate = value.(*models.Date)
		case "developerId":
			p.DeveloperID = value.(int64)
		}
	}
	s.projects[id] = p
	return &p, nil
}

func (s stubProjects) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.deleteProject(id)
	return nil
}

func (s *memStore) deleteProject(id int64) {
	delete(s.projects, id)
	kept := s.associations[:0]
	for _, a := range s.associations {
		if a.ProjectID != id {
			kept = append(kept, a)
		}
	}
	s.associations = kept
}

type stubTechnologies struct{ *memStore }

func (s stubTechnologies) FindAll(ctx context.Context) ([]models.Technology, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Technology(nil), s.technologies...), nil
}

func (s stubTechnologies) FindByName(ctx context.Context, name string) (*models.Technology, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, t := range s.technologies {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, nil
}

type stubProjectTechnologies struct{ *memStore }

func (s stubProjectTechnologies) Find(ctx context.Context, projectID, technologyID int64) (*models.ProjectTechnology, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, a := range s.associations {
		if a.ProjectID == projectID && a.TechnologyID == technologyID {
			return &a, nil
		}
	}
	return nil, nil
}

func (s stubProjectTechnologies) Add(ctx context.Context, projectID, technologyID int64) (*models.ProjectTechnology, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	a := models.ProjectTechnology{
		ID:           s.id(),
		AddedIn:      time.Now().UTC(),
		ProjectID:    projectID,
		TechnologyID: technologyID,
	}
	s.associations = append(s.associations, a)
	return &a, nil
}

func (s stubProjectTechnologies) Delete(ctx context.Context, projectID, technologyID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	kept := s.associations[:0]
	for _, a := range s.associations {
		if a.ProjectID != projectID || a.TechnologyID != technologyID {
			kept = append(kept, a)
		}
	}
	s.associations = kept
	return nil
}

type stubPinger struct{ *memStore }

func (s stubPinger) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pingErr
}
