// Package notebooks defines the notebook entity, its query filter and the
// contracts for managing notebooks owned by a user.
package notebooks
