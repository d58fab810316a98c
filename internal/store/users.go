package store

import "github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"

// AddUser 添加用户，邮箱重复时报错
func (s *Store) AddUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrEmailExists
		}
	}
	cp := u
	s.users = append(s.users, &cp)
	return nil
}

// ListUsers 获取全部用户
func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out
}

// GetUser 按 ID 获取用户
func (s *Store) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return *u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// GetUserByEmail 按邮箱获取用户
func (s *Store) GetUserByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// UpdateUserRole 修改用户角色
func (s *Store) UpdateUserRole(id string, role models.UserRole) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			u.Role = role
			return *u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// DeleteUser 删除用户
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrUserNotFound
}
