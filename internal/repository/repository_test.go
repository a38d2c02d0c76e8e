package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/mediashelf/internal/model"
	"gorm.io/gorm"
)

// newTestRepos 内存数据库 + 全量迁移
func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return NewRepositories(db)
}

func createUser(t *testing.T, repos *Repositories, username, email string) *model.User {
	t.Helper()
	user, err := repos.User.Create(username, email, "password123")
	require.NoError(t, err)
	return user
}

func createContent(t *testing.T, repos *Repositories, externalID, contentType, title string) *model.Content {
	t.Helper()
	content := &model.Content{
		ExternalID: externalID,
		Type:       contentType,
		Title:      title,
		Year:       2020,
	}
	require.NoError(t, repos.Content.Create(content))
	return content
}

func TestUserCreateAndPassword(t *testing.T) {
	repos := newTestRepos(t)

	user := createUser(t, repos, "ayse", "ayse@example.com")
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash)

	assert.True(t, repos.User.CheckPassword(user, "password123"))
	assert.False(t, repos.User.CheckPassword(user, "wrong"))

	found, err := repos.User.FindByEmail("ayse@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := repos.User.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRatingUpsert(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "ayse", "ayse@example.com")
	content := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")

	rating := &model.Rating{UserID: user.ID, ContentID: content.ID, Score: 7}
	require.NoError(t, repos.Rating.Create(rating))

	// 第二次打分走更新分支，不新增行
	existing, err := repos.Rating.FindByUserContent(user.ID, content.ID)
	require.NoError(t, err)
	require.NotNil(t, existing)
	require.NoError(t, repos.Rating.UpdateScore(existing.ID, 9))

	var count int64
	require.NoError(t, repos.DB.Model(&model.Rating{}).
		Where("user_id = ? AND content_id = ?", user.ID, content.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	updated, err := repos.Rating.FindByUserContent(user.ID, content.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Score)
}

func TestRatingDelete(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "ayse", "ayse@example.com")
	content := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")

	require.NoError(t, repos.Rating.Create(&model.Rating{UserID: user.ID, ContentID: content.ID, Score: 7}))

	deleted, err := repos.Rating.Delete(user.ID, content.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repos.Rating.Delete(user.ID, content.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestLibraryDistinctStatuses(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "ayse", "ayse@example.com")
	content := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")

	// 同一内容两种状态各占一行
	_, err := repos.Library.Add(user.ID, content.ID, model.LibraryStatusToWatch)
	require.NoError(t, err)
	_, err = repos.Library.Add(user.ID, content.ID, model.LibraryStatusWatched)
	require.NoError(t, err)

	entries, err := repos.Library.ListByUser(user.ID, "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// 重复加入同一状态只刷新时间，不新增行
	_, err = repos.Library.Add(user.ID, content.ID, model.LibraryStatusWatched)
	require.NoError(t, err)
	entries, err = repos.Library.ListByUser(user.ID, "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	statuses, err := repos.Library.StatusOf(user.ID, content.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.LibraryStatusToWatch, model.LibraryStatusWatched}, statuses)
}

func TestLibraryOwnership(t *testing.T) {
	repos := newTestRepos(t)
	owner := createUser(t, repos, "ayse", "ayse@example.com")
	other := createUser(t, repos, "mehmet", "mehmet@example.com")
	content := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")

	entry, err := repos.Library.Add(owner.ID, content.ID, model.LibraryStatusToWatch)
	require.NoError(t, err)

	// 别人动不了
	updated, err := repos.Library.UpdateStatus(other.ID, entry.ID, model.LibraryStatusWatched)
	require.NoError(t, err)
	assert.False(t, updated)

	removed, err := repos.Library.Remove(other.ID, entry.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	// 本人可以
	updated, err = repos.Library.UpdateStatus(owner.ID, entry.ID, model.LibraryStatusWatched)
	require.NoError(t, err)
	assert.True(t, updated)

	removed, err = repos.Library.Remove(owner.ID, entry.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestLibraryCountByStatus(t *testing.T) {
	repos := newTestRepos(t)
	user := createUser(t, repos, "ayse", "ayse@example.com")
	movie := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")
	book := createContent(t, repos, "zyTCAlFPjgYC", model.ContentTypeBook, "The Google Story")

	_, err := repos.Library.Add(user.ID, movie.ID, model.LibraryStatusWatched)
	require.NoError(t, err)
	_, err = repos.Library.Add(user.ID, book.ID, model.LibraryStatusToRead)
	require.NoError(t, err)

	counts, err := repos.Library.CountByStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Watched)
	assert.Equal(t, 1, counts.ToRead)
	assert.Equal(t, 0, counts.ToWatch)
	assert.Equal(t, 2, counts.Total)
}

func TestFollowLifecycle(t *testing.T) {
	repos := newTestRepos(t)
	u1 := createUser(t, repos, "ayse", "ayse@example.com")
	u2 := createUser(t, repos, "mehmet", "mehmet@example.com")

	exists, err := repos.Follow.Exists(u1.ID, u2.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repos.Follow.Create(u1.ID, u2.ID)
	require.NoError(t, err)

	exists, err = repos.Follow.Exists(u1.ID, u2.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// 方向性：反向不算关注
	exists, err = repos.Follow.Exists(u2.ID, u1.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	followers, err := repos.Follow.Followers(u2.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "ayse", followers[0].Username)

	following, err := repos.Follow.Following(u1.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "mehmet", following[0].Username)

	require.NoError(t, repos.Follow.Delete(u1.ID, u2.ID))
	exists, err = repos.Follow.Exists(u1.ID, u2.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// 再删一次也不报错
	require.NoError(t, repos.Follow.Delete(u1.ID, u2.ID))
}

func TestLikeToggleInvolution(t *testing.T) {
	repos := newTestRepos(t)
	u1 := createUser(t, repos, "ayse", "ayse@example.com")
	content := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")
	activity, err := repos.Activity.Create(u1.ID, model.ActivityTypeLibraryAdd, content.ID, nil, nil)
	require.NoError(t, err)

	// 赞 → 取消 → 回到原点
	require.NoError(t, repos.Like.Create(u1.ID, activity.ID))
	liked, err := repos.Like.Exists(u1.ID, activity.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, repos.Like.Delete(u1.ID, activity.ID))
	liked, err = repos.Like.Exists(u1.ID, activity.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err := repos.Like.CountForActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFeedScenario(t *testing.T) {
	repos := newTestRepos(t)
	u1 := createUser(t, repos, "ayse", "ayse@example.com")
	u2 := createUser(t, repos, "mehmet", "mehmet@example.com")
	content := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")

	_, err := repos.Follow.Create(u2.ID, u1.ID)
	require.NoError(t, err)

	rating := &model.Rating{UserID: u1.ID, ContentID: content.ID, Score: 8}
	require.NoError(t, repos.Rating.Create(rating))
	activity, err := repos.Activity.Create(u1.ID, model.ActivityTypeRating, content.ID, &rating.ID, nil)
	require.NoError(t, err)

	total, err := repos.Activity.CountFeed(u2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	rows, err := repos.Activity.Feed(u2.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	feed := rows[0].Format()
	assert.Equal(t, model.ActivityTypeRating, feed.ActivityType)
	assert.Equal(t, "ayse", feed.User.Username)
	assert.Equal(t, "The Matrix", feed.Content.Title)
	require.NotNil(t, feed.Rating)
	assert.Equal(t, 8, feed.Rating.Score)
	assert.Equal(t, 0, feed.LikeCount)
	assert.False(t, feed.LikedByUser)

	// 点赞后 Feed 里的计数和状态跟着变
	require.NoError(t, repos.Like.Create(u2.ID, activity.ID))
	rows, err = repos.Activity.Feed(u2.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	feed = rows[0].Format()
	assert.Equal(t, 1, feed.LikeCount)
	assert.True(t, feed.LikedByUser)

	// 自己的动态不进自己的 Feed（只看关注的人）
	total, err = repos.Activity.CountFeed(u1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestFeedOrderAndPagination(t *testing.T) {
	repos := newTestRepos(t)
	u1 := createUser(t, repos, "ayse", "ayse@example.com")
	u2 := createUser(t, repos, "mehmet", "mehmet@example.com")
	content := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")

	_, err := repos.Follow.Create(u2.ID, u1.ID)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		activity, err := repos.Activity.Create(u1.ID, model.ActivityTypeLibraryAdd, content.ID, nil, nil)
		require.NoError(t, err)
		// 人为错开时间保证顺序可断言
		require.NoError(t, repos.DB.Model(&model.Activity{}).
			Where("id = ?", activity.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	rows, err := repos.Activity.Feed(u2.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].CreatedAt.After(rows[1].CreatedAt))

	rows, err = repos.Activity.Feed(u2.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUserTimelineLikeRows(t *testing.T) {
	repos := newTestRepos(t)
	u1 := createUser(t, repos, "ayse", "ayse@example.com")
	u2 := createUser(t, repos, "mehmet", "mehmet@example.com")
	content := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")

	activity, err := repos.Activity.Create(u1.ID, model.ActivityTypeLibraryAdd, content.ID, nil, nil)
	require.NoError(t, err)
	require.NoError(t, repos.Like.Create(u2.ID, activity.ID))

	likeRows, err := repos.Activity.ListLikesByUser(u2.ID)
	require.NoError(t, err)
	require.Len(t, likeRows, 1)

	row := likeRows[0].Format()
	assert.Equal(t, "like", row.Source)
	assert.Equal(t, "mehmet", row.User.Username)
	assert.Equal(t, "ayse", row.LikedUsername)
	assert.Equal(t, model.ActivityTypeLibraryAdd, row.LikedActivityType)
	assert.Equal(t, "The Matrix", row.Content.Title)
}

func TestContentFindByExternal(t *testing.T) {
	repos := newTestRepos(t)
	createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")

	found, err := repos.Content.FindByExternal("603", model.ContentTypeMovie)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "The Matrix", found.Title)

	// 同 ID 不同类型不算同一内容
	missing, err := repos.Content.FindByExternal("603", model.ContentTypeBook)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentListTopRated(t *testing.T) {
	repos := newTestRepos(t)
	u1 := createUser(t, repos, "ayse", "ayse@example.com")
	u2 := createUser(t, repos, "mehmet", "mehmet@example.com")
	high := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")
	low := createContent(t, repos, "604", model.ContentTypeMovie, "The Matrix Reloaded")

	require.NoError(t, repos.Rating.Create(&model.Rating{UserID: u1.ID, ContentID: high.ID, Score: 10}))
	require.NoError(t, repos.Rating.Create(&model.Rating{UserID: u2.ID, ContentID: high.ID, Score: 8}))
	require.NoError(t, repos.Rating.Create(&model.Rating{UserID: u1.ID, ContentID: low.ID, Score: 5}))

	rated, err := repos.Content.ListTopRated(model.ContentTypeMovie, 10)
	require.NoError(t, err)
	require.Len(t, rated, 2)
	assert.Equal(t, "The Matrix", rated[0].Title)
	assert.InDelta(t, 9.0, rated[0].AverageScore, 0.01)
	assert.Equal(t, 2, rated[0].RatingCount)
}

func TestUserSuggestions(t *testing.T) {
	repos := newTestRepos(t)
	viewer := createUser(t, repos, "ayse", "ayse@example.com")
	popular := createUser(t, repos, "mehmet", "mehmet@example.com")
	quiet := createUser(t, repos, "zeynep", "zeynep@example.com")
	fan := createUser(t, repos, "ali", "ali@example.com")

	_, err := repos.Follow.Create(fan.ID, popular.ID)
	require.NoError(t, err)

	suggestions, err := repos.User.Suggestions(viewer.ID, 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	assert.Equal(t, "mehmet", suggestions[0].Username)
	assert.Equal(t, 1, suggestions[0].FollowersCount)

	// 已关注的人不再推荐
	_, err = repos.Follow.Create(viewer.ID, popular.ID)
	require.NoError(t, err)
	suggestions, err = repos.User.Suggestions(viewer.ID, 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	for _, s := range suggestions {
		assert.NotEqual(t, popular.ID, s.ID)
	}
	_ = quiet
}

func TestUserSearch(t *testing.T) {
	repos := newTestRepos(t)
	viewer := createUser(t, repos, "ayse", "ayse@example.com")
	target := createUser(t, repos, "mehmet", "mehmet@example.com")
	createUser(t, repos, "zeynep", "zeynep@example.com")

	_, err := repos.Follow.Create(viewer.ID, target.ID)
	require.NoError(t, err)

	results, err := repos.User.Search("MEH", viewer.ID, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "mehmet", results[0].Username)
	assert.True(t, results[0].IsFollowing)

	// 本人不出现在自己的搜索结果里
	results, err = repos.User.Search("ayse", viewer.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUserProfile(t *testing.T) {
	repos := newTestRepos(t)
	u1 := createUser(t, repos, "ayse", "ayse@example.com")
	u2 := createUser(t, repos, "mehmet", "mehmet@example.com")
	u3 := createUser(t, repos, "zeynep", "zeynep@example.com")

	_, err := repos.Follow.Create(u2.ID, u1.ID)
	require.NoError(t, err)
	_, err = repos.Follow.Create(u3.ID, u1.ID)
	require.NoError(t, err)
	_, err = repos.Follow.Create(u1.ID, u2.ID)
	require.NoError(t, err)

	profile, err := repos.User.FindProfile(u1.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 2, profile.FollowersCount)
	assert.Equal(t, 1, profile.FollowingCount)

	missing, err := repos.User.FindProfile(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListLifecycle(t *testing.T) {
	repos := newTestRepos(t)
	owner := createUser(t, repos, "ayse", "ayse@example.com")
	c1 := createContent(t, repos, "603", model.ContentTypeMovie, "The Matrix")
	c2 := createContent(t, repos, "604", model.ContentTypeMovie, "The Matrix Reloaded")

	list := &model.List{UserID: owner.ID, Name: "Bilimkurgu", IsPublic: true}
	require.NoError(t, repos.List.Create(list))

	require.NoError(t, repos.List.AddItem(list.ID, c1.ID))
	require.NoError(t, repos.List.AddItem(list.ID, c2.ID))

	has, err := repos.List.HasItem(list.ID, c1.ID)
	require.NoError(t, err)
	assert.True(t, has)

	summaries, err := repos.List.ListByUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].ItemCount)

	detail, err := repos.List.Detail(list.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "ayse", detail.Username)
	assert.Len(t, detail.Items, 2)

	removed, err := repos.List.RemoveItem(list.ID, c1.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	require.NoError(t, repos.List.Delete(list.ID))
	detail, err = repos.List.Detail(list.ID)
	require.NoError(t, err)
	assert.Nil(t, detail)

	var itemCount int64
	require.NoError(t, repos.DB.Model(&model.ListItem{}).Where("list_id = ?", list.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
}
