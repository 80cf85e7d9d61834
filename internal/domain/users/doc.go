// Package users defines accounts, API tokens and the contracts used to
// register, log in and authenticate requests.
package users
