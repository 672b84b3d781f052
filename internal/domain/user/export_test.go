package user

import "golang.org/x/crypto/bcrypt"

// UseMinCost lowers the bcrypt cost to keep tests fast.
func (s *Service) UseMinCost() {
	s.cost = bcrypt.MinCost
}
