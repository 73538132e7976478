package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Faus21/wander-wave-sub000/internal/model"

	"gorm.io/gorm"
)

var errStoreDown = errors.New("store down")

type fakeUserStore struct {
	users map[uint]*model.User
	// RandomUsers 按该顺序返回，测试里可控
	order []uint
}

func (f *fakeUserStore) FindUserByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByNickname(_ context.Context, nickname string) (*model.User, error) {
	for _, u := range f.users {
		if u.Nickname == nickname {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) RandomUsers(_ context.Context, limit int, exclude []uint) ([]model.User, error) {
	excluded := make(map[uint]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	var out []model.User
	for _, id := range f.order {
		if excluded[id] {
			continue
		}
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakePostStore struct {
	byAuthor    map[uint][]model.Post
	byTag       map[uint][]model.Post
	popular     []model.Post
	failAuthors map[uint]bool
	failTags    map[uint]bool
	popularErr  error

	mu       sync.Mutex
	tagCalls map[uint]int
}

func (f *fakePostStore) ListByAuthor(_ context.Context, authorID uint) ([]model.Post, error) {
	if f.failAuthors[authorID] {
		return nil, errStoreDown
	}
	return f.byAuthor[authorID], nil
}

func (f *fakePostStore) ListByHashtag(_ context.Context, hashtagID uint, _ int) ([]model.Post, error) {
	f.mu.Lock()
	if f.tagCalls == nil {
		f.tagCalls = make(map[uint]int)
	}
	f.tagCalls[hashtagID]++
	f.mu.Unlock()
	if f.failTags[hashtagID] {
		return nil, errStoreDown
	}
	return f.byTag[hashtagID], nil
}

func (f *fakePostStore) MostPopular(_ context.Context, _ int) ([]model.Post, error) {
	if f.popularErr != nil {
		return nil, f.popularErr
	}
	return f.popular, nil
}

type fakeInteractionStore struct {
	posts []model.Post
	err   error
}

func (f *fakeInteractionStore) ListPostsByUser(_ context.Context, _ uint, limit int) ([]model.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.posts) > limit {
		return f.posts[:limit], nil
	}
	return f.posts, nil
}

type fakeSubscriptionStore struct {
	subs    map[uint][]uint
	failFor map[uint]bool
}

func (f *fakeSubscriptionStore) GetSubscriptionIDs(_ context.Context, userID uint) ([]uint, error) {
	if f.failFor[userID] {
		return nil, errStoreDown
	}
	return f.subs[userID], nil
}

func (f *fakeSubscriptionStore) GetSubscriberIDs(_ context.Context, userID uint) ([]uint, error) {
	var out []uint
	for subscriber, targets := range f.subs {
		for _, t := range targets {
			if t == userID {
				out = append(out, subscriber)
			}
		}
	}
	return out, nil
}
