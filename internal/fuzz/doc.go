// Package fuzztests houses Go fuzz harnesses for the unit snapshot path
// (bytes -> snapshot decoder -> tree checks -> trace dump). Its goal is to
// smoke test robustness and guard against panics on arbitrary inputs.
//
// Назначение: декодировать произвольные байты как снапшот и прогонять
// результат через проверку инвариантов и дамп.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/snapshot, internal/ast, internal/diagfmt,
// internal/testkit.
package fuzztests
