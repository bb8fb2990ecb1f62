//go:build production

package authstate

const productionBuild = true
