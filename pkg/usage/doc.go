// Package usage tracks consumed study resources as plain event records and
// answers the aggregate questions enforcement needs: sessions started today,
// questions answered in a session, pieces practiced this month.
//
// There is no counter table and no reset job: daily and monthly windows are
// just time-bounded aggregate queries over the event records (reset by date
// math), so a new day or month starts counting from zero automatically.
package usage
