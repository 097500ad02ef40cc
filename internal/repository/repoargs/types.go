// Package repoargs holds the argument structs passed into repositories, plus
// the names repositories are registered under in the unit of work.
package repoargs

type RepositoryName string

const (
	UserRepoName        RepositoryName = "user"
	CustomerRepoName    RepositoryName = "customer"
	TransactionRepoName RepositoryName = "transaction"
)
