package lists

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultPostsEndpoint and DefaultUsersEndpoint are the public sample APIs.
	DefaultPostsEndpoint = "https://jsonplaceholder.typicode.com/posts"
	DefaultUsersEndpoint = "https://jsonplaceholder.typicode.com/users"
	DefaultPostsLimit    = 10

	excerptRunes = 80
	placeholder  = "—"
)

type Post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Company struct {
	Name string `json:"name"`
}

type Address struct {
	City string `json:"city"`
}

type User struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Company *Company `json:"company,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// PostsURL appends the _limit query to endpoint. A non-positive limit leaves
// the endpoint as is.
func PostsURL(endpoint string, limit int) (string, error) {
	if limit <= 0 {
		return endpoint, nil
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("lists: posts endpoint: %w", err)
	}
	query := parsed.Query()
	query.Set("_limit", strconv.Itoa(limit))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// NewPosts builds the posts table: id, title and an excerpt of the body,
// filtered on title.
func NewPosts(endpoint string, limit int, fns ...OptionFn[Post]) (*Component[Post], error) {
	target, err := PostsURL(endpoint, limit)
	if err != nil {
		return nil, err
	}
	base := []OptionFn[Post]{
		WithName[Post]("posts"),
		WithTitle[Post]("貼文"),
		WithEndpoint[Post](target),
		WithColumns[Post]("#", "標題", "內容摘要"),
		WithProjection(projectPost),
		WithMatch(matchPost),
	}
	return New(append(base, fns...)...)
}

// NewUsers builds the users table: id, name, email, company and city,
// filtered on name or email.
func NewUsers(endpoint string, fns ...OptionFn[User]) (*Component[User], error) {
	base := []OptionFn[User]{
		WithName[User]("users"),
		WithTitle[User]("使用者"),
		WithEndpoint[User](endpoint),
		WithColumns[User]("#", "姓名", "Email", "公司", "城市"),
		WithProjection(projectUser),
		WithMatch(matchUser),
	}
	return New(append(base, fns...)...)
}

func projectPost(p Post) []string {
	return []string{strconv.Itoa(p.ID), p.Title, Excerpt(p.Body)}
}

func matchPost(p Post, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query)
}

func projectUser(u User) []string {
	company, city := placeholder, placeholder
	if u.Company != nil && u.Company.Name != "" {
		company = u.Company.Name
	}
	if u.Address != nil && u.Address.City != "" {
		city = u.Address.City
	}
	return []string{strconv.Itoa(u.ID), u.Name, u.Email, company, city}
}

func matchUser(u User, query string) bool {
	return strings.Contains(strings.ToLower(u.Name), query) ||
		strings.Contains(strings.ToLower(u.Email), query)
}

// Excerpt keeps the first 80 runes of body with newlines turned into spaces,
// followed by an ellipsis when anything was cut.
func Excerpt(body string) string {
	if utf8.RuneCountInString(body) <= excerptRunes {
		return strings.ReplaceAll(body, "\n", " ")
	}
	runes := []rune(body)
	return strings.ReplaceAll(string(runes[:excerptRunes]), "\n", " ") + "…"
}
