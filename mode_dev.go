//go:build !production

package authstate

const productionBuild = false
