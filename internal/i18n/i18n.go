// Package i18n holds the user-facing message table.
package i18n

import "strings"

const (
	English = "en"
	Arabic  = "ar"
)

// Message codes.
const (
	CodeValidation           = "validation_failed"
	CodeRequired             = "required"
	CodeUnauthorized         = "unauthorized"
	CodeInvalidCredentials   = "invalid_credentials"
	CodeAccountDisabled      = "account_disabled"
	CodeForbidden            = "forbidden"
	CodeNotFound             = "not_found"
	CodePersonNotFound       = "person_not_found"
	CodeAlreadyExists        = "already_exists"
	CodeConflict             = "conflict"
	CodeConfirmationRequired = "confirmation_required"
	CodeProvisioningDisabled = "provisioning_unavailable"
	CodePartialFailure       = "partial_failure"
	CodeRemote               = "remote_error"
	CodeInternal             = "internal_error"
	CodeRateLimited          = "rate_limited"
	CodePasswordTooShort     = "password_too_short"
	CodePasswordMismatch     = "password_mismatch"
	CodeSessionLoading       = "session_loading"
	CodePasswordChange       = "password_change_required"
	CodeStatusOpen           = "status_open"
	CodeStatusPending        = "status_pending"
	CodeStatusClosed         = "status_closed"
)

var messages = map[string]map[string]string{
	English: {
		CodeValidation:           "Please check the highlighted fields",
		CodeRequired:             "Required",
		CodeUnauthorized:         "Please sign in to continue",
		CodeInvalidCredentials:   "Invalid email or password",
		CodeAccountDisabled:      "Your account has been disabled. Please contact an administrator.",
		CodeForbidden:            "You do not have permission to perform this action",
		CodeNotFound:             "Not found",
		CodePersonNotFound:       "Person not found",
		CodeAlreadyExists:        "A record with these details already exists",
		CodeConflict:             "The record was changed by someone else",
		CodeConfirmationRequired: "Please confirm the deletion",
		CodeProvisioningDisabled: "User provisioning is not available on this server",
		CodePartialFailure:       "The operation only partially completed",
		CodeRemote:               "The data service reported an error",
		CodeInternal:             "Something went wrong. Please try again.",
		CodeRateLimited:          "Too many attempts. Please wait and try again.",
		CodePasswordTooShort:     "Password must be at least 6 characters",
		CodePasswordMismatch:     "Passwords do not match",
		CodeSessionLoading:       "Your session is still loading",
		CodePasswordChange:       "Please change your password before continuing",
		CodeStatusOpen:           "Open",
		CodeStatusPending:        "Pending",
		CodeStatusClosed:         "Closed",
	},
	Arabic: {
		CodeValidation:           "يرجى مراجعة الحقول المحددة",
		CodeRequired:             "مطلوب",
		CodeUnauthorized:         "يرجى تسجيل الدخول للمتابعة",
		CodeInvalidCredentials:   "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		CodeAccountDisabled:      "تم تعطيل حسابك. يرجى التواصل مع المسؤول.",
		CodeForbidden:            "ليس لديك صلاحية لتنفيذ هذا الإجراء",
		CodeNotFound:             "غير موجود",
		CodePersonNotFound:       "الشخص غير موجود",
		CodeAlreadyExists:        "يوجد سجل بنفس البيانات",
		CodeConflict:             "تم تعديل السجل من قبل مستخدم آخر",
		CodeConfirmationRequired: "يرجى تأكيد الحذف",
		CodeProvisioningDisabled: "إنشاء المستخدمين غير متاح على هذا الخادم",
		CodePartialFailure:       "اكتملت العملية جزئياً فقط",
		CodeRemote:               "فشلت العملية",
		CodeInternal:             "حدث خطأ ما. يرجى المحاولة مرة أخرى.",
		CodeRateLimited:          "محاولات كثيرة. يرجى الانتظار ثم المحاولة مرة أخرى.",
		CodePasswordTooShort:     "يجب أن تكون كلمة المرور 6 أحرف على الأقل",
		CodePasswordMismatch:     "كلمات المرور غير متطابقة",
		CodeSessionLoading:       "جاري تحميل الجلسة",
		CodePasswordChange:       "يرجى تغيير كلمة المرور قبل المتابعة",
		CodeStatusOpen:           "مفتوحة",
		CodeStatusPending:        "قيد الانتظار",
		CodeStatusClosed:         "مغلقة",
	},
}

// Supported reports whether lang has a message table.
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// Translator resolves message codes with a fallback locale.
type Translator struct {
	fallback string
}

// NewTranslator returns a translator that falls back to the given locale,
// or English if it is not supported.
func NewTranslator(fallback string) *Translator {
	if !Supported(fallback) {
		fallback = English
	}
	return &Translator{fallback: fallback}
}

// Default returns the fallback locale.
func (t *Translator) Default() string { return t.fallback }

// T returns the message for code in lang. Unknown languages use the fallback
// locale; unknown codes are returned as-is.
func (t *Translator) T(lang, code string) string {
	if msg, ok := messages[lang][code]; ok {
		return msg
	}
	if msg, ok := messages[t.fallback][code]; ok {
		return msg
	}
	return code
}

// Detect picks the first supported language from an Accept-Language header.
func (t *Translator) Detect(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(part)
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		if i := strings.IndexByte(tag, '-'); i >= 0 {
			tag = tag[:i]
		}
		tag = strings.ToLower(tag)
		if Supported(tag) {
			return tag
		}
	}
	return t.fallback
}
