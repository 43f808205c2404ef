package foreign

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"newt/internal/object"
)

func newCryptoModule() *object.Record {
	m := object.NewRecord()
	m.Register("md5", hostFunc("crypto.md5", 1, cryptoMd5))
	m.Register("sha256", hostFunc("crypto.sha256", 1, cryptoSha256))
	m.Register("sha512", hostFunc("crypto.sha512", 1, cryptoSha512))
	return m
}

func cryptoMd5(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "crypto.md5")
	if errObj != nil {
		return errObj
	}
	sum := md5.Sum([]byte(s))
	return &object.String{Value: hex.EncodeToString(sum[:])}
}

func cryptoSha256(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "crypto.sha256")
	if errObj != nil {
		return errObj
	}
	sum := sha256.Sum256([]byte(s))
	return &object.String{Value: hex.EncodeToString(sum[:])}
}

func cryptoSha512(args []object.Value) object.Value {
	s, errObj := unpackString(args[0], "crypto.sha512")
	if errObj != nil {
		return errObj
	}
	sum := sha512.Sum512([]byte(s))
	return &object.String{Value: hex.EncodeToString(sum[:])}
}
