package sqlstore

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
)

// likeEscape LIKE语句使用的转义字符
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern 构造"包含"匹配的LIKE模式(不区分大小写)
// 关键词中的%和_按字面匹配
func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(term)) + "%"
}

// searchFilter 按方言(gorm Dialector.Name())生成标题/作者的搜索条件
// 两个占位符都绑定containsPattern
// postgres: ILIKE
// sqlite: 内置LOWER只转换ASCII,使用注册的unicode_lower(与strings.ToLower一致)
// mysql: utf8mb4下LOWER支持Unicode
func searchFilter(dialect string) string {
	var title, author string
	switch dialect {
	case "postgres":
		title, author = "b.title ILIKE ?", "b.author ILIKE ?"
	case "sqlite":
		title, author = "unicode_lower(b.title) LIKE ?", "unicode_lower(b.author) LIKE ?"
	default:
		title, author = "LOWER(b.title) LIKE ?", "LOWER(b.author) LIKE ?"
	}
	escape := " ESCAPE '" + likeEscape + "'"
	return " AND (" + title + escape + " OR " + author + escape + ")"
}

// sqliteDriverName 注册了unicode_lower函数的SQLite驱动
const sqliteDriverName = "sqlite3_bookstore"

var registerOnce sync.Once

// registerSQLiteDriver 注册SQLite驱动(只执行一次,sql.Register重复注册会panic)
func registerSQLiteDriver() {
	registerOnce.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
			},
		})
	})
}
