package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/mediashelf/internal/config"
	"github.com/user/mediashelf/internal/model"
	"github.com/user/mediashelf/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestSearchMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "tr-TR", r.URL.Query().Get("language"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":603,"title":"Matrix","original_title":"The Matrix","overview":"Bir hacker...","release_date":"1999-03-31","poster_path":"/abc.jpg"}]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		TMDBAPIKey:       "k",
		TMDBBaseURL:      srv.URL,
		TMDBImageBaseURL: "https://image.tmdb.org/t/p/w500",
		TMDBLanguage:     "tr-TR",
	}
	svc := NewTMDBService(cfg)

	items, err := svc.SearchMovies("matrix")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "603", items[0].ExternalID)
	assert.Equal(t, model.ContentTypeMovie, items[0].Type)
	assert.Equal(t, 1999, items[0].Year)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", items[0].PosterURL)
}

func TestMovieDetailsWithDirector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":603,"title":"Matrix","original_title":"The Matrix","overview":"Bir hacker...","release_date":"1999-03-31","poster_path":"/abc.jpg","runtime":136,"genres":[{"name":"Bilim Kurgu"},{"name":"Aksiyon"}],"credits":{"crew":[{"name":"Lilly Wachowski","job":"Director"},{"name":"Bill Pope","job":"Director of Photography"}]}}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		TMDBAPIKey:       "k",
		TMDBBaseURL:      srv.URL,
		TMDBImageBaseURL: "https://image.tmdb.org/t/p/w500",
		TMDBLanguage:     "tr-TR",
	}
	svc := NewTMDBService(cfg)

	content, err := svc.MovieDetails("603")
	require.NoError(t, err)
	assert.Equal(t, "603", content.ExternalID)
	assert.Equal(t, "Lilly Wachowski", content.Director)
	assert.Equal(t, "Bilim Kurgu, Aksiyon", content.Genres)
	assert.Equal(t, 136, content.Runtime)
	assert.Equal(t, 1999, content.Year)
}

func TestSearchBooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"abc123","volumeInfo":{"title":"Kurk Mantolu Madonna","authors":["Sabahattin Ali"],"publishedDate":"1943","pageCount":160,"imageLinks":{"thumbnail":"http://books.google.com/thumb.jpg"}}}]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{GoogleBooksURL: srv.URL}
	svc := NewGoogleBooksService(cfg)

	items, err := svc.SearchBooks("madonna")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "abc123", items[0].ExternalID)
	assert.Equal(t, model.ContentTypeBook, items[0].Type)
	assert.Equal(t, "Sabahattin Ali", items[0].Author)
	assert.Equal(t, 1943, items[0].Year)
}

func TestTopRatedBooksFiltersUnrated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"id":"low","volumeInfo":{"title":"Orta","averageRating":3.5}},
			{"id":"none","volumeInfo":{"title":"Puansiz"}},
			{"id":"high","volumeInfo":{"title":"Yuksek","averageRating":4.8}}
		]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{GoogleBooksURL: srv.URL}
	svc := NewGoogleBooksService(cfg)

	items, err := svc.TopRatedBooks()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "high", items[0].ExternalID)
	assert.Equal(t, "low", items[1].ExternalID)
}

func TestResolverFindOrFetch(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":603,"title":"Matrix","release_date":"1999-03-31","credits":{"crew":[]}}`))
	}))
	defer srv.Close()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	repos := repository.NewRepositories(db)

	cfg := &config.Config{TMDBBaseURL: srv.URL, TMDBLanguage: "tr-TR"}
	resolver := NewContentResolver(repos.Content, NewTMDBService(cfg), NewGoogleBooksService(cfg))

	// 首次解析抓取并落库
	content, err := resolver.Resolve(model.ContentTypeMovie, "603")
	require.NoError(t, err)
	assert.NotZero(t, content.ID)
	assert.Equal(t, 1, hits)

	// 再次解析直接命中本地，不再打外部接口
	again, err := resolver.Resolve(model.ContentTypeMovie, "603")
	require.NoError(t, err)
	assert.Equal(t, content.ID, again.ID)
	assert.Equal(t, 1, hits)

	// 未知类型
	_, err = resolver.Resolve("song", "1")
	assert.Error(t, err)
}

func TestYearFromDate(t *testing.T) {
	assert.Equal(t, 1999, yearFromDate("1999-03-31"))
	assert.Equal(t, 1943, yearFromDate("1943"))
	assert.Equal(t, 0, yearFromDate(""))
	assert.Equal(t, 0, yearFromDate("19"))
}
