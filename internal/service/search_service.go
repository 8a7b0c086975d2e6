package service

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/devfolio/backend/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// SearchService mirrors public projects into Meilisearch. Indexing is
// best-effort; callers log failures and move on. A nil SearchService means
// search is disabled.
type SearchService interface {
	IndexProject(project *model.Project, username string) error
	DeleteProject(id string) error
	DeleteUserProjects(username string) error
	SearchProjects(username, query string) ([]ProjectSearchHit, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"username", "is_public"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err := s.client.Index("projects").UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update projects filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at"}
	_, err = s.client.Index("projects").UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update projects sortable attributes: %v", err)
	}
}

type projectDoc struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Username    string   `json:"username"`
	IsPublic    bool     `json:"is_public"`
	Tags        []string `json:"tags"`
	Languages   []string `json:"languages"`
	Frameworks  []string `json:"frameworks"`
	CreatedAt   int64    `json:"created_at"`
}

// ProjectSearchHit is the subset of an indexed project returned to clients.
type ProjectSearchHit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Languages   []string `json:"languages"`
	Frameworks  []string `json:"frameworks"`
}

func (s *searchService) cleanForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	cleaned := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleaned), " ")
}

func (s *searchService) IndexProject(project *model.Project, username string) error {
	tags := make([]string, 0, len(project.Tags))
	for _, tag := range project.Tags {
		tags = append(tags, tag.Name)
	}
	languages := make([]string, 0, len(project.Languages))
	for _, lang := range project.Languages {
		languages = append(languages, lang.Name)
	}
	frameworks := make([]string, 0, len(project.Frameworks))
	for _, fw := range project.Frameworks {
		frameworks = append(frameworks, fw.Name)
	}

	doc := projectDoc{
		ID:          project.ID.String(),
		Title:       project.Title,
		Description: s.cleanForIndex(project.Description),
		Username:    username,
		IsPublic:    project.IsPublic,
		Tags:        tags,
		Languages:   languages,
		Frameworks:  frameworks,
		CreatedAt:   project.CreatedAt.Unix(),
	}

	_, err := s.client.Index("projects").AddDocuments([]projectDoc{doc}, strPtr("id"))
	return err
}

func (s *searchService) DeleteProject(id string) error {
	_, err := s.client.Index("projects").DeleteDocument(id)
	return err
}

func (s *searchService) DeleteUserProjects(username string) error {
	_, err := s.client.Index("projects").DeleteDocumentsByFilter(
		fmt.Sprintf("username = %q", username),
	)
	return err
}

func (s *searchService) SearchProjects(username, query string) ([]ProjectSearchHit, error) {
	resp, err := s.client.Index("projects").Search(query, &meilisearch.SearchRequest{
		Filter: fmt.Sprintf("username = %q AND is_public = true", username),
		Limit:  50,
	})
	if err != nil {
		return nil, err
	}

	hits := make([]ProjectSearchHit, 0, len(resp.Hits))
	for _, raw := range resp.Hits {
		encoded, err := json.Marshal(raw)
		if err != nil {
			continue
		}
		var hit ProjectSearchHit
		if err := json.Unmarshal(encoded, &hit); err != nil {
			continue
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

func strPtr(s string) *string {
	return &s
}
