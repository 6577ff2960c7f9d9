package queries

import "github.com/DedS3t/monopoly-engine/app/models"

func (q *Queries) CreateUser(user *models.User) error {
	_, err := q.db.Model(user).Insert()
	return err
}

func (q *Queries) GetUserByEmail(email string) (*models.User, error) {
	user := new(models.User)
	if err := q.db.Model(user).Where("email = ?", email).Select(); err != nil {
		return nil, err
	}
	return user, nil
}

func (q *Queries) GetUserData(id string) (*models.User, error) {
	user := &models.User{Id: id}
	if err := q.db.Model(user).WherePK().Select(); err != nil {
		return nil, err
	}
	return user, nil
}
