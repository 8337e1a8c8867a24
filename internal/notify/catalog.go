package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
)

// Ключи сообщений об операциях.
const (
	KeyCommentsLoadFailed  = "comments.load_failed"
	KeyCommentCreated      = "comment.created"
	KeyCommentCreateFailed = "comment.create_failed"
	KeyCommentReplied      = "comment.replied"
	KeyCommentReplyFailed  = "comment.reply_failed"
	KeyCommentDeleted      = "comment.deleted"
	KeyCommentDeleteFailed = "comment.delete_failed"
	KeyCommentEmpty        = "comment.empty"
	KeyCommentNoPermission = "comment.no_permission"
	KeyFeedLoadFailed      = "feed.load_failed"
	KeySearchFailed        = "search.failed"
	KeyRelatedFailed       = "related.failed"
	KeyLoginSucceeded      = "auth.login"
	KeyLoginFailed         = "auth.login_failed"
	KeyRegistered          = "auth.registered"
	KeyRegisterFailed      = "auth.register_failed"
	KeyOAuthSucceeded      = "auth.oauth"
	KeyOAuthFailed         = "auth.oauth_failed"
	KeyLoggedOut           = "auth.logout"
	KeyTagsLoadFailed      = "tags.load_failed"
)

var supported = []language.Tag{language.Chinese, language.English}

var messages = map[string][2]string{
	// key: {zh, en}
	KeyCommentsLoadFailed:  {"获取评论失败", "Failed to load comments"},
	KeyCommentCreated:      {"评论发表成功", "Comment posted"},
	KeyCommentCreateFailed: {"发表评论失败", "Failed to post comment"},
	KeyCommentReplied:      {"回复成功", "Reply posted"},
	KeyCommentReplyFailed:  {"回复失败", "Failed to post reply"},
	KeyCommentDeleted:      {"删除成功", "Comment deleted"},
	KeyCommentDeleteFailed: {"删除失败", "Failed to delete comment"},
	KeyCommentEmpty:        {"请输入评论内容", "Please enter a comment"},
	KeyCommentNoPermission: {"您没有权限删除该评论", "You are not allowed to delete this comment"},
	KeyFeedLoadFailed:      {"获取项目列表失败", "Failed to load projects"},
	KeySearchFailed:        {"搜索失败", "Search failed"},
	KeyRelatedFailed:       {"获取推荐项目失败", "Failed to load related projects"},
	KeyLoginSucceeded:      {"登录成功", "Signed in"},
	KeyLoginFailed:         {"登录失败", "Sign-in failed"},
	KeyRegistered:          {"注册成功", "Registered"},
	KeyRegisterFailed:      {"注册失败，请重试", "Registration failed, please retry"},
	KeyOAuthSucceeded:      {"OAuth 登录成功！", "OAuth sign-in succeeded"},
	KeyOAuthFailed:         {"登录状态验证失败", "Failed to verify sign-in"},
	KeyLoggedOut:           {"登出成功", "Signed out"},
	KeyTagsLoadFailed:      {"获取标签列表失败", "Failed to load tags"},

	apierrors.KeyInternal:        {"操作失败", "Operation failed"},
	apierrors.KeyTransport:       {"网络错误，请稍后重试", "Network error, please retry later"},
	apierrors.KeyTimeout:         {"请求超时", "Request timed out"},
	apierrors.KeyDecode:          {"服务器响应无效", "Invalid server response"},
	apierrors.KeyDomain:          {"请求失败", "Request failed"},
	apierrors.KeyValidation:      {"表单校验失败", "Form validation failed"},
	apierrors.KeyForbidden:       {"您没有权限执行此操作", "Permission denied"},
	apierrors.KeyUnauthenticated: {"请先登录", "Please sign in first"},
	apierrors.KeyHydrating:       {"正在加载登录状态", "Restoring session"},
	apierrors.KeyStale:           {"结果已过期", "Result superseded"},
	apierrors.KeyNotFound:        {"内容不存在", "Not found"},
}

// Localizer переводит ключи уведомлений в текст выбранной локали.
type Localizer struct {
	printer *message.Printer
}

// NewLocalizer выбирает ближайшую поддерживаемую локаль (zh по умолчанию).
func NewLocalizer(locale string) *Localizer {
	b := catalog.NewBuilder(catalog.Fallback(language.Chinese))
	for key, texts := range messages {
		_ = b.SetString(language.Chinese, key, texts[0])
		_ = b.SetString(language.English, key, texts[1])
	}

	tag := language.Chinese
	if t, err := language.Parse(locale); err == nil {
		_, idx, conf := language.NewMatcher(supported).Match(t)
		if conf != language.No {
			tag = supported[idx]
		}
	}

	return &Localizer{printer: message.NewPrinter(tag, message.Catalog(b))}
}

// Text — готовый текст уведомления. Текст бэкенда имеет приоритет.
func (l *Localizer) Text(n apierrors.Notice) string {
	if n.Message != "" {
		return n.Message
	}
	if l == nil {
		return n.Key
	}

	return l.printer.Sprintf(n.Key)
}
