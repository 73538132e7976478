package e

import "fmt"

const (
	Success            = 0
	ErrorServer        = 500
	ErrorInvalidParams = 400
	//用户错误代码
	ErrorUserExist    = 10001
	ErrorUserNotFound = 10002
	ErrorPassword     = 10003
	ErrorUserBanned   = 10004
	ErrorToken        = 10005
	ErrorUnAuthorized = 10006
	ErrorPermission   = 10007
	//业务
	ErrorPostNotFound      = 20001
	ErrorSelfAction        = 20002
	ErrorAlreadySubscribed = 20003
	ErrorNotSubscribed     = 20004
)

type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d,msg:%s", e.Code, e.Msg)
}
func New(code int, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

var (
	ErrSuccess           = New(Success, "success")
	ErrServer            = New(ErrorServer, "服务器内部错误")
	ErrInvalidArgs       = New(ErrorInvalidParams, "参数错误")
	ErrUserExist         = New(ErrorUserExist, "用户已存在")
	ErrUserNotFound      = New(ErrorUserNotFound, "用户不存在")
	ErrPassword          = New(ErrorPassword, "密码错误")
	ErrUserBanned        = New(ErrorUserBanned, "账号已被封禁")
	ErrToken             = New(ErrorToken, "token无效")
	ErrUnAuthorized      = New(ErrorUnAuthorized, "需要登录")
	ErrPermission        = New(ErrorPermission, "无权操作")
	ErrPostNotFound      = New(ErrorPostNotFound, "游记不存在")
	ErrSelfAction        = New(ErrorSelfAction, "不能对自己操作")
	ErrAlreadySubscribed = New(ErrorAlreadySubscribed, "已经订阅了")
	ErrNotSubscribed     = New(ErrorNotSubscribed, "尚未订阅")
)
